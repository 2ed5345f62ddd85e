// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/ndview/internal/backend/cpu"
	"github.com/born-ml/ndview/internal/parallel"
	"github.com/born-ml/ndview/tensor"
)

// Backend represents the native CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend for tensor.CPU.
//
// Example:
//
//	import (
//	    "github.com/born-ml/ndview/backend/cpu"
//	    "github.com/born-ml/ndview/tensor"
//	)
//
//	func main() {
//	    engine, err := tensor.NewEngine(tensor.WithBackend(cpu.New()))
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithDevice serves arrays tagged with d instead of tensor.CPU.
func WithDevice(d tensor.Device) Option {
	return internalcpu.WithDevice(d)
}

// WithParallel sets the chunking used by strided copies, casts, gathers and
// selects.
func WithParallel(cfg ParallelConfig) Option {
	return internalcpu.WithParallel(cfg)
}

// DefaultParallelConfig returns the chunking used when no option is given.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
