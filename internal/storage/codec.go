package storage

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hwdrift/hwdrift/pkg/types"
)

// The export format is deliberately plain structured text so users can
// inspect, archive, or version-control their baselines:
//
//	# hwdrift baseline v1
//	# generated: 2006-01-02T15:04:05Z
//	# hostname: workstation-7
//
//	[System]
//	Manufacturer = Dell Inc.
//	SerialNumber = ABC123
//
//	[Disk/0]
//	SerialNumber = S1XFNEAD123456
//
// Sections follow the fixed category order, instances their discovery
// order, and keys are sorted within a section, so external diffing of two
// export files is meaningful. Exactly one space on each side of the =
// belongs to the format; everything after it is the value, byte for byte,
// so padded serials survive the round trip.

const headerMagic = "# hwdrift baseline v1"

// Write serializes the snapshot and atomically replaces the file at path.
// Absent fields are omitted; they reconstitute as absent on read. The write
// is all-or-nothing so an interrupted export can never corrupt the baseline
// used by future diffs.
func Write(snapshot *types.Snapshot, path string) error {
	for i := range snapshot.Fields {
		f := &snapshot.Fields[i]
		if f.Present && strings.ContainsAny(f.Value, "\r\n") {
			return fmt.Errorf("field %s: value contains a line break, cannot be exported", f.FieldKey())
		}
	}
	data := Encode(snapshot)
	if err := writeFileAtomic(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write baseline %s: %w", path, err)
	}
	return nil
}

// Encode renders the snapshot in export form.
func Encode(snapshot *types.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(headerMagic + "\n")
	sb.WriteString("# generated: " + snapshot.Timestamp.UTC().Format(time.RFC3339) + "\n")
	if snapshot.Hostname != "" {
		sb.WriteString("# hostname: " + snapshot.Hostname + "\n")
	}

	for _, cat := range types.HardwareCategories() {
		if cat.IsMultiInstance() {
			for idx := 0; idx < snapshot.InstanceCount(cat); idx++ {
				writeSection(&sb, sectionName(cat, idx), instanceFields(snapshot, cat, idx))
			}
		} else {
			writeSection(&sb, sectionName(cat, 0), instanceFields(snapshot, cat, 0))
		}
	}
	return sb.String()
}

// Read parses the export at path. It fails with ErrNoBaseline when the file
// does not exist and ErrMalformed when the content cannot be parsed; both
// are recoverable "no baseline available" states for the caller.
func Read(path string) (*ExportRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoBaseline, path)
		}
		return nil, fmt.Errorf("read baseline %s: %w", path, err)
	}
	rec, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Decode parses export-format text into an ExportRecord.
func Decode(data string) (*ExportRecord, error) {
	lines := strings.Split(data, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != headerMagic {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}

	rec := &ExportRecord{}
	var (
		curCat    types.Category
		curIdx    int
		inSection bool
		known     bool
	)

	for n, raw := range lines[1:] {
		raw = strings.TrimSuffix(raw, "\r")
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			parseHeaderComment(rec, line)
		case strings.HasPrefix(line, "["):
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("%w: line %d: unterminated section", ErrMalformed, n+2)
			}
			cat, idx, ok := parseSection(line[1 : len(line)-1])
			inSection = true
			known = ok
			curCat, curIdx = cat, idx
		case strings.Contains(line, "="):
			if !inSection {
				return nil, fmt.Errorf("%w: line %d: field outside any section", ErrMalformed, n+2)
			}
			if !known {
				// Sections from a newer format version are skipped, not
				// fatal.
				continue
			}
			key, val, _ := strings.Cut(raw, "=")
			key = strings.TrimSpace(key)
			if key == "" {
				return nil, fmt.Errorf("%w: line %d: empty key", ErrMalformed, n+2)
			}
			rec.Fields = append(rec.Fields, types.Field{
				Category: curCat,
				Instance: curIdx,
				Key:      key,
				// Strip only the separator space; the rest of the line is
				// the value, whitespace included.
				Value:    strings.TrimPrefix(val, " "),
				Present:  true,
			})
		default:
			return nil, fmt.Errorf("%w: line %d: unparseable line", ErrMalformed, n+2)
		}
	}
	return rec, nil
}

func writeSection(sb *strings.Builder, name string, fields []types.Field) {
	sb.WriteString("\n[" + name + "]\n")
	for _, f := range fields {
		sb.WriteString(f.Key + " = " + f.Value + "\n")
	}
}

// instanceFields returns the present fields of one instance, keys sorted.
func instanceFields(snapshot *types.Snapshot, cat types.Category, idx int) []types.Field {
	var out []types.Field
	for _, f := range snapshot.FieldsFor(cat) {
		if f.Instance == idx && f.Present {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func sectionName(cat types.Category, idx int) string {
	if cat.IsMultiInstance() {
		return cat.Label() + "/" + strconv.Itoa(idx)
	}
	return cat.Label()
}

func parseSection(name string) (types.Category, int, bool) {
	label, idxStr, hasIdx := strings.Cut(name, "/")
	cat, ok := types.ParseCategory(strings.TrimSpace(label))
	if !ok {
		return "", 0, false
	}
	idx := 0
	if hasIdx {
		n, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if err != nil || n < 0 {
			return "", 0, false
		}
		idx = n
	}
	return cat, idx, true
}

func parseHeaderComment(rec *ExportRecord, line string) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	if v, ok := strings.CutPrefix(body, "generated:"); ok {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
			rec.GeneratedAt = t
		}
	}
	if v, ok := strings.CutPrefix(body, "hostname:"); ok {
		rec.Hostname = strings.TrimSpace(v)
	}
}
