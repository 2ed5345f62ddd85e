package webgpu

import (
	"github.com/born-ml/ndview/internal/parallel"
)

// Option configures a Backend.
type Option func(*options)

type options struct {
	index        int
	maxBatchSize int
	host         parallel.Config
}

func defaultOptions() options {
	return options{host: parallel.DefaultConfig()}
}

// WithDeviceIndex sets the index reported in the backend's device token.
func WithDeviceIndex(i int) Option {
	return func(o *options) {
		o.index = i
	}
}

// WithMaxBatchSize sets the number of queued command buffers that triggers a
// submit. Zero disables the limit.
func WithMaxBatchSize(n int) Option {
	return func(o *options) {
		o.maxBatchSize = n
	}
}

// WithHostParallel configures the host kernels used for strided transfers,
// casts and dtypes the shaders do not cover.
func WithHostParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.host = cfg
	}
}
