// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndview/internal/tensor"
)

// DType is a constraint for Go element types that map onto a DataType.
type DType = tensor.DType

// DataType represents the runtime element type of an array.
type DataType = tensor.DataType

// Data type constants.
const (
	Bool    DataType = tensor.Bool
	Int8    DataType = tensor.Int8
	Int16   DataType = tensor.Int16
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Uint16  DataType = tensor.Uint16
	Uint32  DataType = tensor.Uint32
	Uint64  DataType = tensor.Uint64
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device identifies a backend instance such as "native:0".
type Device = tensor.Device

// DeviceKind identifies a family of backends.
type DeviceKind = tensor.DeviceKind

// Device kinds.
const (
	Native DeviceKind = tensor.Native
	WebGPU DeviceKind = tensor.WebGPU
)

// CPU is the default native device.
var CPU = tensor.CPU

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} is a 3-D array with dimensions 2×3×4.
type Shape = tensor.Shape

// Errors returned by every operation. Match them with errors.Is.
var (
	ErrDimension        = tensor.ErrDimension
	ErrValue            = tensor.ErrValue
	ErrIndexOutOfBounds = tensor.ErrIndexOutOfBounds
	ErrBackendMismatch  = tensor.ErrBackendMismatch
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrDType            = tensor.ErrDType
	ErrUnavailable      = tensor.ErrUnavailable
)

// ParseDataType parses a data type name such as "float32".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// ParseDevice parses a device identifier such as "webgpu:1".
func ParseDevice(s string) (Device, error) {
	return tensor.ParseDevice(s)
}

// PromoteTypes returns the dtype Where produces for x and y of types a and b.
func PromoteTypes(a, b DataType) DataType {
	return tensor.PromoteTypes(a, b)
}

// BroadcastShapes returns the shape every input broadcasts to.
//
// Shapes are aligned from the right; each axis must be equal or 1.
//
//	(3, 1) + (1, 4) → (3, 4)
//	(3, 4) + (3, 5) → ErrShapeMismatch
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	return tensor.BroadcastShapes(shapes...)
}

// BroadcastStrides returns byte strides that read an array of the given
// shape and strides as if it had shape out. Broadcast axes get stride 0.
func BroadcastStrides(shape Shape, strides []int, out Shape) ([]int, error) {
	return tensor.BroadcastStrides(shape, strides, out)
}
