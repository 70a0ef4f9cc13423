package types

import (
	"encoding/json"
	"fmt"
)

// Field is one hardware identifier value. A Field with Present=false means
// the provider could not retrieve the value; that is distinct from an empty
// string, which is a valid (if unhelpful) value.
type Field struct {
	Category Category `json:"category"`
	Instance int      `json:"instance"`
	Key      string   `json:"key"`
	Value    string   `json:"value,omitempty"`
	Present  bool     `json:"present"`
	// Err records the per-field collection failure reason, for diagnostic
	// display only. It never participates in diffing.
	Err string `json:"error,omitempty"`
}

// FieldKey uniquely identifies a Field within a snapshot.
type FieldKey struct {
	Category Category `json:"category"`
	Instance int      `json:"instance"`
	Key      string   `json:"key"`
}

// Key returns the field's unique key.
func (f Field) FieldKey() FieldKey {
	return FieldKey{Category: f.Category, Instance: f.Instance, Key: f.Key}
}

// String renders the key in its display form, e.g. "BIOS.Vendor" or
// "Disk[0].SerialNumber".
func (k FieldKey) String() string {
	if k.Category.IsMultiInstance() {
		return fmt.Sprintf("%s[%d].%s", k.Category.Label(), k.Instance, k.Key)
	}
	return fmt.Sprintf("%s.%s", k.Category.Label(), k.Key)
}

// MarshalJSON omits Value entirely for absent fields so an absent value can
// never be confused with an empty string on the wire.
func (f Field) MarshalJSON() ([]byte, error) {
	type alias Field
	a := alias(f)
	if !a.Present {
		a.Value = ""
	}
	return json.Marshal(a)
}

// DisplayValue returns the value for rendering, substituting the N/A
// placeholder for absent fields so table layout stays stable.
func (f Field) DisplayValue() string {
	if !f.Present {
		return "N/A"
	}
	return f.Value
}
