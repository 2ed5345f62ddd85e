// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides n-dimensional arrays with NumPy-style indexing.
//
// # Overview
//
// This package provides:
//   - RawTensor: shape, byte strides and byte offset over a shared buffer
//   - Zero-copy views via Get (integers, slices, NewAxis, Ellipsis)
//   - Broadcasting of any number of shapes
//   - Engine: take and where dispatched to the backend owning the data
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ndview/backend/cpu"
//	    "github.com/born-ml/ndview/tensor"
//	)
//
//	func main() {
//	    x, _ := tensor.Arange(12, tensor.Float32, tensor.CPU)
//	    x, _ = x.View(tensor.Shape{3, 4}, []int{16, 4}, 0)
//
//	    // Views share x's buffer
//	    row, _ := tensor.Get(x, 1)                        // x[1]
//	    col, _ := tensor.Get(x, tensor.Ellipsis, -1)      // x[..., -1]
//	    rev, _ := tensor.Get(x, tensor.S(nil, nil, -1))   // x[::-1]
//
//	    // Gather and select copy into new arrays
//	    engine, _ := tensor.NewEngine(tensor.WithBackend(cpu.New()))
//	    picked, _ := engine.TakeInts(x, []int{2, 0}, nil, 1)
//	}
//
// # Supported Data Types
//
//   - bool
//   - int8, int16, int32, int64
//   - uint8, uint16, uint32, uint64
//   - float16, float32, float64
//
// Where promotes x and y to a common type with PromoteTypes. The condition
// may have any dtype and is read as non-zero.
//
// # Strides and Offsets
//
// Strides and offsets count bytes, not elements. Negative strides come from
// reversed slices; broadcast axes have stride 0.
//
// # Broadcasting
//
//	(3, 1) + (1, 4)      → (3, 4)
//	(2, 1, 4) + (3, 1)   → (2, 3, 4)
//	(3, 4) + (3, 5)      → ErrShapeMismatch
//
// # Memory Management
//
// Buffers are reference-counted. Every view holds a reference; Release drops
// it and the memory is freed when the last reference goes.
package tensor
