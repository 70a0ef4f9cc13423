package storage

import (
	"errors"
	"time"

	"github.com/hwdrift/hwdrift/pkg/types"
)

// DefaultExportFile is the baseline location used when none is configured.
const DefaultExportFile = "serials_export.txt"

var (
	// ErrNoBaseline means no prior export exists. A legitimate first-run
	// state, not a crash condition.
	ErrNoBaseline = errors.New("no baseline export found")

	// ErrMalformed means the export file exists but cannot be parsed into
	// fields. Callers should prompt for a re-export rather than silently
	// discarding the baseline.
	ErrMalformed = errors.New("baseline export is malformed")
)

// ExportRecord is the persisted form of a snapshot, re-read as a diff
// baseline. Absent fields are omitted on write, so every parsed field is
// present by construction.
type ExportRecord struct {
	GeneratedAt time.Time
	Hostname    string
	Fields      []types.Field
}

// Lookup returns the baseline value for a key and whether it exists.
func (r *ExportRecord) Lookup(k types.FieldKey) (string, bool) {
	for i := range r.Fields {
		if r.Fields[i].FieldKey() == k {
			return r.Fields[i].Value, true
		}
	}
	return "", false
}

// FieldsFor returns the baseline fields of one category in file order.
func (r *ExportRecord) FieldsFor(c types.Category) []types.Field {
	var out []types.Field
	for i := range r.Fields {
		if r.Fields[i].Category == c {
			out = append(out, r.Fields[i])
		}
	}
	return out
}

// InstanceCount returns the number of recorded instances for a category.
func (r *ExportRecord) InstanceCount(c types.Category) int {
	max := -1
	for i := range r.Fields {
		if r.Fields[i].Category == c && r.Fields[i].Instance > max {
			max = r.Fields[i].Instance
		}
	}
	return max + 1
}
