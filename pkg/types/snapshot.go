package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Snapshot is the full set of hardware identifier Fields captured at one
// instant. It is built once by the inventory builder and treated as
// read-only by every consumer afterwards.
type Snapshot struct {
	ID        string    `json:"id"`
	Hostname  string    `json:"hostname"`
	Timestamp time.Time `json:"timestamp"`
	Fields    []Field   `json:"fields"`
}

// Validate checks that the snapshot has all required fields and that every
// Field is well formed.
func (s *Snapshot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("snapshot ID is required")
	}
	if s.Timestamp.IsZero() {
		return errors.New("snapshot timestamp is required")
	}
	if s.Fields == nil {
		return errors.New("snapshot fields cannot be nil")
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		if !f.Category.Valid() || f.Category == CategoryAdvanced {
			return fmt.Errorf("field %d: invalid category %q", i, f.Category)
		}
		if strings.TrimSpace(f.Key) == "" {
			return fmt.Errorf("field %d: key is required", i)
		}
		if f.Instance < 0 {
			return fmt.Errorf("field %d: negative instance index", i)
		}
	}
	return nil
}

// FieldCount returns the number of fields in the snapshot.
func (s *Snapshot) FieldCount() int {
	return len(s.Fields)
}

// Lookup returns the field for a key and whether it exists.
func (s *Snapshot) Lookup(k FieldKey) (Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].FieldKey() == k {
			return s.Fields[i], true
		}
	}
	return Field{}, false
}

// Get returns the present value for (category, instance, key), or "" and
// false when the field is missing or absent.
func (s *Snapshot) Get(c Category, instance int, key string) (string, bool) {
	f, ok := s.Lookup(FieldKey{Category: c, Instance: instance, Key: key})
	if !ok || !f.Present {
		return "", false
	}
	return f.Value, true
}

// FieldsFor returns the fields of one category in snapshot order.
func (s *Snapshot) FieldsFor(c Category) []Field {
	var out []Field
	for i := range s.Fields {
		if s.Fields[i].Category == c {
			out = append(out, s.Fields[i])
		}
	}
	return out
}

// InstanceCount returns the number of discovered instances for a category.
// Zero is a valid result for multi-instance categories with no hardware
// found.
func (s *Snapshot) InstanceCount(c Category) int {
	max := -1
	for i := range s.Fields {
		if s.Fields[i].Category == c && s.Fields[i].Instance > max {
			max = s.Fields[i].Instance
		}
	}
	return max + 1
}

// Clone creates a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	clone := &Snapshot{
		ID:        s.ID,
		Hostname:  s.Hostname,
		Timestamp: s.Timestamp,
	}
	if s.Fields != nil {
		clone.Fields = make([]Field, len(s.Fields))
		copy(clone.Fields, s.Fields)
	}
	return clone
}

// String returns a short description of the snapshot.
func (s *Snapshot) String() string {
	return fmt.Sprintf("%s snapshot %s (%d fields, %s)",
		s.Hostname, s.ID, len(s.Fields), s.Timestamp.Format(time.RFC3339))
}
