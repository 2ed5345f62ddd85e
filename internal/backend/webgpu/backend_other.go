//go:build !windows

package webgpu

import (
	"fmt"

	"github.com/born-ml/ndview/internal/tensor"
)

// Backend is the WebGPU backend. On this platform no adapter can be opened
// and New always fails with tensor.ErrUnavailable.
type Backend struct {
	token tensor.Device
}

// New reports that WebGPU is not available on this platform.
func New(opts ...Option) (*Backend, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return nil, fmt.Errorf("webgpu: device %d: not supported on this platform: %w", o.index, tensor.ErrUnavailable)
}

// IsAvailable reports whether WebGPU can be used on this system.
func IsAvailable() bool {
	return false
}

func (b *Backend) unavailable() error {
	return fmt.Errorf("webgpu: %w", tensor.ErrUnavailable)
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string { return "WebGPU" }

// Device returns the compute device.
func (b *Backend) Device() tensor.Device { return b.token }

// Synchronize always fails.
func (b *Backend) Synchronize() error { return b.unavailable() }

// ReadStrided always fails.
func (b *Backend) ReadStrided(*tensor.RawTensor) ([]byte, error) { return nil, b.unavailable() }

// WriteStrided always fails.
func (b *Backend) WriteStrided(*tensor.RawTensor, []byte) error { return b.unavailable() }

// Cast always fails.
func (b *Backend) Cast(*tensor.RawTensor, tensor.DataType) (*tensor.RawTensor, error) {
	return nil, b.unavailable()
}

// Gather always fails.
func (b *Backend) Gather(*tensor.GatherPlan) (*tensor.RawTensor, error) { return nil, b.unavailable() }

// Select always fails.
func (b *Backend) Select(*tensor.SelectPlan) (*tensor.RawTensor, error) { return nil, b.unavailable() }

var _ tensor.Backend = (*Backend)(nil)
