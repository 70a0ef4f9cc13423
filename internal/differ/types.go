package differ

import (
	"time"

	"github.com/hwdrift/hwdrift/pkg/types"
)

// Status classifies one field key against the baseline. The four values are
// fixed vocabulary; renderers may color them but must not rename them.
type Status string

const (
	// StatusUnchanged means baseline and current values are byte-identical
	// (both absent also counts as unchanged).
	StatusUnchanged Status = "unchanged"
	// StatusChanged means both sides have the key but the values differ,
	// including an absent value becoming real or a real value going absent.
	StatusChanged Status = "changed"
	// StatusNew means the key exists only in the current snapshot.
	StatusNew Status = "new"
	// StatusMissing means the key exists only in the baseline: the hardware
	// no longer reports this identifier. Removed or replaced hardware must
	// stay visible, never be silently dropped.
	StatusMissing Status = "missing"
)

// FieldDiff is the classification of one field key.
type FieldDiff struct {
	Key        types.FieldKey `json:"key"`
	Status     Status         `json:"status"`
	OldValue   string         `json:"old_value,omitempty"`
	OldPresent bool           `json:"old_present"`
	NewValue   string         `json:"new_value,omitempty"`
	NewPresent bool           `json:"new_present"`
}

// Summary counts classifications across a report.
type Summary struct {
	Unchanged int `json:"unchanged"`
	Changed   int `json:"changed"`
	New       int `json:"new"`
	Missing   int `json:"missing"`
	Total     int `json:"total"`
}

// Report holds every field key present in either side, classified exactly
// once, ordered by current snapshot iteration order with Missing entries
// appended grouped by their baseline category.
type Report struct {
	BaselineTime time.Time   `json:"baseline_time"`
	CurrentTime  time.Time   `json:"current_time"`
	Hostname     string      `json:"hostname,omitempty"`
	Diffs        []FieldDiff `json:"diffs"`
	Summary      Summary     `json:"summary"`
}

// HasDrift reports whether anything differs from the baseline.
func (r *Report) HasDrift() bool {
	return r.Summary.Changed > 0 || r.Summary.New > 0 || r.Summary.Missing > 0
}
