// Package cpu implements the native backend: pure Go strided loops split
// into chunks that run on a bounded set of goroutines.
package cpu

import (
	"github.com/born-ml/ndview/internal/parallel"
	"github.com/born-ml/ndview/internal/tensor"
)

// CPUBackend executes data movement on host memory.
type CPUBackend struct {
	device tensor.Device
	cfg    parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel overrides the chunking configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(b *CPUBackend) {
		b.cfg = cfg
	}
}

// WithDevice sets the device the backend reports and allocates on.
func WithDevice(d tensor.Device) Option {
	return func(b *CPUBackend) {
		b.device = d
	}
}

// New creates a new CPU backend.
func New(opts ...Option) *CPUBackend {
	b := &CPUBackend{
		device: tensor.CPU,
		cfg:    parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Synchronize is a no-op: every CPU kernel completes before returning.
func (cpu *CPUBackend) Synchronize() error {
	return nil
}

var _ tensor.Backend = (*CPUBackend)(nil)
