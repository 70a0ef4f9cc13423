package hardware

import (
	"context"
	"errors"

	"github.com/hwdrift/hwdrift/pkg/types"
)

// ErrUnsupported is returned by Ping on platforms without a management
// interface to query. It is the one provider failure treated as fatal at
// startup.
var ErrUnsupported = errors.New("hardware management interface not available on this platform")

// RawField is one raw (key, value-or-absent) pair as reported by the
// management interface. Present=false means the interface could not supply
// the value; an empty string with Present=true is a real value.
type RawField struct {
	Key     string
	Value   string
	Present bool
	Err     string
}

// Instance is the ordered field list for one discovered hardware instance.
type Instance struct {
	Fields []RawField
}

// Provider supplies raw identifier values, one query per category. A failed
// query degrades that category to an empty result; it never takes the other
// categories down with it.
type Provider interface {
	// Ping probes whether the management interface is reachable at all.
	Ping(ctx context.Context) error

	// Collect returns the discovered instances for one category. Singleton
	// categories return at most one instance.
	Collect(ctx context.Context, cat types.Category) ([]Instance, error)
}

// value builds a present RawField.
func value(key, v string) RawField {
	return RawField{Key: key, Value: v, Present: true}
}

// absent builds a RawField whose value could not be retrieved.
func absent(key, reason string) RawField {
	return RawField{Key: key, Present: false, Err: reason}
}

// optional builds a RawField from a nullable management-interface value.
func optional(key string, v *string) RawField {
	if v == nil {
		return absent(key, "not reported")
	}
	return value(key, *v)
}
