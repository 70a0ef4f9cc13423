package differ

import (
	"errors"

	"github.com/hwdrift/hwdrift/internal/storage"
	"github.com/hwdrift/hwdrift/pkg/types"
)

// Differ compares a current snapshot against a baseline export record.
// Comparison is pure byte-for-byte value equality: hardware serials are
// case-sensitive, security-relevant data, so no fuzzy matching.
type Differ struct{}

func New() *Differ {
	return &Differ{}
}

// Compare classifies every field key present in either the current snapshot
// or the baseline. Each key appears exactly once in the output.
func (d *Differ) Compare(current *types.Snapshot, baseline *storage.ExportRecord) (*Report, error) {
	if current == nil {
		return nil, errors.New("current snapshot is nil")
	}
	if baseline == nil {
		return nil, errors.New("baseline export record is nil")
	}

	report := &Report{
		BaselineTime: baseline.GeneratedAt,
		CurrentTime:  current.Timestamp,
		Hostname:     current.Hostname,
		Diffs:        []FieldDiff{},
	}

	// Against each category, baseline instances are remapped onto current
	// instances by their identity key before fields are compared, so disk
	// reordering does not read as wholesale change.
	consumed := make(map[types.FieldKey]bool, len(baseline.Fields))

	for _, cat := range types.HardwareCategories() {
		mapping := alignInstances(cat, current, baseline)

		for _, f := range current.FieldsFor(cat) {
			baseKey := types.FieldKey{Category: cat, Instance: f.Instance, Key: f.Key}
			if mapped, ok := mapping.currentToBaseline[f.Instance]; ok {
				baseKey.Instance = mapped
			} else if cat.IsMultiInstance() && len(mapping.currentToBaseline) > 0 {
				// This current instance matched nothing in the baseline.
				baseKey.Instance = -1
			}

			oldVal, inBaseline := "", false
			if baseKey.Instance >= 0 {
				oldVal, inBaseline = baseline.Lookup(baseKey)
			}
			if inBaseline {
				consumed[baseKey] = true
			}
			report.add(classify(f, oldVal, inBaseline))
		}
	}

	// Everything left in the baseline is hardware the machine no longer
	// reports, grouped by baseline category order.
	for _, cat := range types.HardwareCategories() {
		for _, f := range baseline.FieldsFor(cat) {
			if consumed[f.FieldKey()] {
				continue
			}
			report.add(FieldDiff{
				Key:        f.FieldKey(),
				Status:     StatusMissing,
				OldValue:   f.Value,
				OldPresent: true,
			})
		}
	}

	report.Summary.Total = len(report.Diffs)
	return report, nil
}

// classify resolves one current field against its baseline value.
func classify(f types.Field, oldVal string, inBaseline bool) FieldDiff {
	diff := FieldDiff{
		Key:        f.FieldKey(),
		NewValue:   f.Value,
		NewPresent: f.Present,
		OldValue:   oldVal,
		OldPresent: inBaseline,
	}
	switch {
	case !inBaseline && !f.Present:
		// Absent on both sides: the baseline omits absent values, so a
		// currently-absent field with no baseline entry is unchanged.
		diff.Status = StatusUnchanged
	case !inBaseline:
		diff.Status = StatusNew
	case !f.Present:
		// Value went from real to unretrievable.
		diff.Status = StatusChanged
	case f.Value == oldVal:
		diff.Status = StatusUnchanged
	default:
		diff.Status = StatusChanged
	}
	return diff
}

func (r *Report) add(d FieldDiff) {
	r.Diffs = append(r.Diffs, d)
	switch d.Status {
	case StatusUnchanged:
		r.Summary.Unchanged++
	case StatusChanged:
		r.Summary.Changed++
	case StatusNew:
		r.Summary.New++
	case StatusMissing:
		r.Summary.Missing++
	}
}

type instanceMapping struct {
	currentToBaseline map[int]int
}

// alignInstances matches baseline instances to current instances of a
// multi-instance category by the category's identity key when both sides
// report it; instances left over on both sides pair up positionally. For
// singleton categories the identity mapping is trivially 0→0.
func alignInstances(cat types.Category, current *types.Snapshot, baseline *storage.ExportRecord) instanceMapping {
	m := instanceMapping{currentToBaseline: map[int]int{}}
	if !cat.IsMultiInstance() {
		m.currentToBaseline[0] = 0
		return m
	}

	curCount := current.InstanceCount(cat)
	baseCount := baseline.InstanceCount(cat)
	idKey := cat.IdentityKey()

	baselineByID := make(map[string]int, baseCount)
	for idx := 0; idx < baseCount; idx++ {
		if v, ok := baseline.Lookup(types.FieldKey{Category: cat, Instance: idx, Key: idKey}); ok && v != "" {
			baselineByID[v] = idx
		}
	}

	baselineTaken := make(map[int]bool, baseCount)
	var unmatchedCurrent []int
	for idx := 0; idx < curCount; idx++ {
		v, ok := current.Get(cat, idx, idKey)
		if ok && v != "" {
			if baseIdx, found := baselineByID[v]; found && !baselineTaken[baseIdx] {
				m.currentToBaseline[idx] = baseIdx
				baselineTaken[baseIdx] = true
				continue
			}
		}
		unmatchedCurrent = append(unmatchedCurrent, idx)
	}

	// Positional fallback for whatever identity matching left behind.
	var unmatchedBaseline []int
	for idx := 0; idx < baseCount; idx++ {
		if !baselineTaken[idx] {
			unmatchedBaseline = append(unmatchedBaseline, idx)
		}
	}
	for i, curIdx := range unmatchedCurrent {
		if i >= len(unmatchedBaseline) {
			break
		}
		m.currentToBaseline[curIdx] = unmatchedBaseline[i]
	}
	return m
}
