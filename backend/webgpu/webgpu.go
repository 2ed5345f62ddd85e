// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for accelerated gather and select.
//
// The backend runs on Windows through go-webgpu. On other platforms New
// fails with tensor.ErrUnavailable and IsAvailable reports false.
//
// Example:
//
//	import (
//	    "github.com/born-ml/ndview/backend/cpu"
//	    "github.com/born-ml/ndview/backend/webgpu"
//	    "github.com/born-ml/ndview/tensor"
//	)
//
//	func main() {
//	    opts := []tensor.EngineOption{tensor.WithBackend(cpu.New())}
//	    if gpu, err := webgpu.New(); err == nil {
//	        defer gpu.Release()
//	        opts = append(opts, tensor.WithBackend(gpu))
//	    }
//	    engine, _ := tensor.NewEngine(opts...)
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/ndview/internal/backend/webgpu"
	"github.com/born-ml/ndview/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Option configures a Backend.
type Option = internalwebgpu.Option

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend whose
// arrays are tagged webgpu:N. Call Release() when done to free GPU resources.
//
// Returns an error wrapping tensor.ErrUnavailable if no compatible adapter
// is present.
func New(opts ...Option) (*Backend, error) {
	return internalwebgpu.New(opts...)
}

// WithDeviceIndex sets N in the backend's webgpu:N device token.
func WithDeviceIndex(i int) Option {
	return internalwebgpu.WithDeviceIndex(i)
}

// WithMaxBatchSize sets how many queued command buffers trigger a submit.
func WithMaxBatchSize(n int) Option {
	return internalwebgpu.WithMaxBatchSize(n)
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    engine, _ = tensor.NewEngine(tensor.WithBackend(gpu))
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
