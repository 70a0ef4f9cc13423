package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/hwdrift/hwdrift/internal/differ"
	"github.com/hwdrift/hwdrift/internal/lockstate"
	"github.com/hwdrift/hwdrift/pkg/types"
)

// TableRenderer renders snapshots, diff reports, and lock-state conclusions
// as aligned text tables. Color encodes diff classification only; the
// classification values themselves come from the differ unrenamed.
type TableRenderer struct {
	noColor bool
}

func NewTableRenderer(noColor bool) *TableRenderer {
	return &TableRenderer{noColor: noColor}
}

func (t *TableRenderer) paint(c *color.Color, s string) string {
	if t.noColor {
		return s
	}
	return c.Sprint(s)
}

var (
	colUnchanged = color.New(color.FgGreen)
	colChanged   = color.New(color.FgYellow)
	colNew       = color.New(color.FgCyan)
	colMissing   = color.New(color.FgRed)
	colHeader    = color.New(color.Bold)
)

// FormatSnapshot renders the full inventory, one section per category.
func (t *TableRenderer) FormatSnapshot(snap *types.Snapshot) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hardware Inventory\n")
	fmt.Fprintf(&buf, "==================\n")
	fmt.Fprintf(&buf, "Host:      %s\n", snap.Hostname)
	fmt.Fprintf(&buf, "Captured:  %s\n", snap.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&buf, "Fields:    %d\n", snap.FieldCount())

	for _, cat := range types.HardwareCategories() {
		buf.WriteString("\n" + t.paint(colHeader, cat.Label()) + "\n")
		for _, line := range t.CategoryLines(snap, cat) {
			buf.WriteString(line + "\n")
		}
	}
	return buf.Bytes()
}

// CategoryLines renders one category as table lines. The interactive view
// windows these by the tab's scroll offset.
func (t *TableRenderer) CategoryLines(snap *types.Snapshot, cat types.Category) []string {
	fields := snap.FieldsFor(cat)
	if len(fields) == 0 {
		if cat.IsMultiInstance() {
			return []string{"  (none discovered)"}
		}
		return []string{"  (not collected)"}
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	lastInstance := -1
	for _, f := range fields {
		if cat.IsMultiInstance() && f.Instance != lastInstance {
			if lastInstance >= 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s %d\n", cat.Label(), f.Instance)
			lastInstance = f.Instance
		}
		val := f.DisplayValue()
		if !f.Present && f.Err != "" {
			val = fmt.Sprintf("N/A (%s)", f.Err)
		}
		fmt.Fprintf(w, "  %s\t%s\n", f.Key, val)
	}
	w.Flush()
	return splitLines(buf.String())
}

// FormatDiffReport renders the three-way classification against the
// baseline, grouped by status.
func (t *TableRenderer) FormatDiffReport(report *differ.Report) []byte {
	var buf bytes.Buffer
	for _, line := range t.DiffLines(report) {
		buf.WriteString(line + "\n")
	}
	return buf.Bytes()
}

// DiffLines renders a diff report as table lines.
func (t *TableRenderer) DiffLines(report *differ.Report) []string {
	lines := []string{
		"Baseline Comparison",
		"===================",
		fmt.Sprintf("Baseline: %s", formatTime(report.BaselineTime)),
		fmt.Sprintf("Current:  %s", formatTime(report.CurrentTime)),
		fmt.Sprintf("Summary:  %d unchanged, %d changed, %d new, %d missing",
			report.Summary.Unchanged, report.Summary.Changed,
			report.Summary.New, report.Summary.Missing),
		"",
	}

	if !report.HasDrift() {
		lines = append(lines, t.paint(colUnchanged, "No identifier drift detected."))
		return lines
	}

	for _, d := range report.Diffs {
		switch d.Status {
		case differ.StatusChanged:
			lines = append(lines, t.paint(colChanged,
				fmt.Sprintf("  ~ %s: %s -> %s", d.Key, displayOld(d), displayNew(d))))
		case differ.StatusNew:
			lines = append(lines, t.paint(colNew,
				fmt.Sprintf("  + %s: %s", d.Key, displayNew(d))))
		case differ.StatusMissing:
			lines = append(lines, t.paint(colMissing,
				fmt.Sprintf("  - %s: %s (no longer reported)", d.Key, d.OldValue)))
		}
	}
	return lines
}

// FormatLockReport renders lock-state conclusions.
func (t *TableRenderer) FormatLockReport(report *lockstate.Report) []byte {
	var buf bytes.Buffer
	for _, line := range t.LockLines(report) {
		buf.WriteString(line + "\n")
	}
	return buf.Bytes()
}

// LockLines renders a lock-state report as table lines.
func (t *TableRenderer) LockLines(report *lockstate.Report) []string {
	lines := []string{
		"Firmware Lock State",
		"===================",
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, c := range report.Conclusions {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Check, strings.ToUpper(string(c.Result)), c.Reason)
	}
	w.Flush()
	lines = append(lines, splitLines(buf.String())...)

	lines = append(lines, "")
	if report.OverallLocked {
		lines = append(lines, t.paint(colMissing, "Overall: LOCKED (OEM-restricted configuration)"))
	} else {
		lines = append(lines, t.paint(colUnchanged, "Overall: not locked"))
	}
	return lines
}

func displayOld(d differ.FieldDiff) string {
	if !d.OldPresent {
		return "N/A"
	}
	return d.OldValue
}

func displayNew(d differ.FieldDiff) string {
	if !d.NewPresent {
		return "N/A"
	}
	return d.NewValue
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "(unknown)"
	}
	return t.Format(time.RFC3339)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
