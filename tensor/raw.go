// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndview/internal/tensor"
)

// RawTensor is an n-dimensional array: a shape, byte strides and a byte
// offset into a reference-counted buffer on one device.
//
// Views created by indexing share the buffer. Call Release when an array is
// no longer needed; the buffer is freed when the last view is released.
//
// Example:
//
//	a, _ := tensor.FromSlice([]float32{0, 1, 2, 3, 4, 5}, tensor.Shape{2, 3}, tensor.CPU)
//	row, _ := tensor.Get(a, 1)            // a[1], shares a's buffer
//	rev, _ := tensor.Get(a, tensor.S(nil, nil, -1)) // a[::-1]
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed contiguous array.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a contiguous array holding a copy of data.
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// Scalar creates a zero-dimensional array.
func Scalar[T DType](v T, device Device) (*RawTensor, error) {
	return tensor.Scalar(v, device)
}

// Arange creates a 1-D array holding 0, 1, ..., n-1.
func Arange(n int, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Arange(n, dtype, device)
}

// ToSlice reads the elements addressed by r in row-major order. It does not
// wait for pending accelerator work; call Engine.Synchronize first.
func ToSlice[T DType](r *RawTensor) ([]T, error) {
	return tensor.ToSlice[T](r)
}
