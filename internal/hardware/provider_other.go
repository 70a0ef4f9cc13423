//go:build !windows

package hardware

import (
	"context"

	"github.com/hwdrift/hwdrift/pkg/types"
)

// WMIProvider is a stub on non-Windows platforms. Ping always fails, which
// callers treat as total provider unavailability.
type WMIProvider struct{}

func NewWMIProvider() *WMIProvider {
	return &WMIProvider{}
}

func (p *WMIProvider) Ping(ctx context.Context) error {
	return ErrUnsupported
}

func (p *WMIProvider) Collect(ctx context.Context, cat types.Category) ([]Instance, error) {
	return nil, ErrUnsupported
}
