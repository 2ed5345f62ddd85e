// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for array data movement.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Strided read and write of arbitrary views, including negative and
//     zero (broadcast) strides
//   - Casts between all twelve dtypes
//   - Gather (take) and ternary select (where) kernels
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ndview/backend/cpu"
//	    "github.com/born-ml/ndview/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithParallel(cpu.DefaultParallelConfig()))
//	    engine, _ := tensor.NewEngine(tensor.WithBackend(backend))
//	}
//
// # Performance
//
// Large outputs are split into contiguous chunks processed by a bounded
// set of goroutines. Small outputs run on the calling goroutine.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. It holds no mutable state;
// concurrent writes to overlapping views are the caller's responsibility.
package cpu
