package tensor

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// DeviceKind identifies a family of compute backends.
type DeviceKind int

// Supported device kinds.
const (
	Native DeviceKind = iota
	WebGPU
)

// String returns the device kind token used in device identifiers.
func (k DeviceKind) String() string {
	switch k {
	case Native:
		return "native"
	case WebGPU:
		return "webgpu"
	default:
		return "unknown"
	}
}

// Device identifies a backend instance, e.g. "native:0" or "webgpu:1".
type Device struct {
	Kind  DeviceKind
	Index int
}

// CPU is the default native device.
var CPU = Device{Kind: Native}

// String returns the device identifier.
func (d Device) String() string {
	return d.Kind.String() + ":" + strconv.Itoa(d.Index)
}

// ParseDevice parses a device identifier. The index defaults to 0.
func ParseDevice(s string) (Device, error) {
	name, idx, hasIdx := strings.Cut(strings.TrimSpace(s), ":")
	var d Device
	switch strings.ToLower(name) {
	case "native", "cpu":
		d.Kind = Native
	case "webgpu", "gpu":
		d.Kind = WebGPU
	default:
		return Device{}, fmt.Errorf("unknown device %q: %w", s, ErrValue)
	}
	if hasIdx {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return Device{}, fmt.Errorf("invalid device index in %q: %w", s, ErrValue)
		}
		d.Index = n
	}
	return d, nil
}

// tensorBuffer is a reference-counted buffer shared by an array and all of
// its views.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	return wrapTensorBuffer(make([]byte, size))
}

func wrapTensorBuffer(data []byte) *tensorBuffer {
	buf := &tensorBuffer{data: data}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for views and clones).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (tb *tensorBuffer) isUnique() bool {
	return tb.refCount.Load() == 1
}

// RawTensor is the low-level array representation: a dtype, a shape, byte
// strides and a byte offset into a shared buffer.
//
// Metadata is immutable once constructed. Indexing always produces a new
// RawTensor; views share the buffer and keep it alive.
type RawTensor struct {
	buffer *tensorBuffer // Shared reference-counted buffer
	shape  Shape         // Array dimensions
	stride []int         // Byte strides, may be negative
	dtype  DataType      // Runtime type information
	device Device        // Device token selecting the backend
	offset int           // Byte offset of element [0, ..., 0]
}

// NewRaw creates a new contiguous RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &RawTensor{
		buffer: newTensorBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ByteStrides(dtype.Size()),
		dtype:  dtype,
		device: device,
	}, nil
}

// WrapRaw creates a contiguous RawTensor over an existing byte slice without
// copying it. Writes through the array are visible in data and vice versa.
func WrapRaw(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if want := shape.NumElements() * dtype.Size(); len(data) != want {
		return nil, fmt.Errorf("shape %v of %s requires %d bytes, but got %d: %w",
			shape, dtype, want, len(data), ErrDimension)
	}

	return &RawTensor{
		buffer: wrapTensorBuffer(data),
		shape:  shape.Clone(),
		stride: shape.ByteStrides(dtype.Size()),
		dtype:  dtype,
		device: device,
	}, nil
}

// View returns a new RawTensor sharing r's buffer with the given metadata.
// The layout is validated against the buffer before anything is committed.
func (r *RawTensor) View(shape Shape, strides []int, offset int) (*RawTensor, error) {
	if len(shape) != len(strides) {
		return nil, fmt.Errorf("view: shape %v and strides %v differ in rank: %w", shape, strides, ErrDimension)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	if err := checkLayout(shape, strides, offset, r.dtype.Size(), len(r.buffer.data)); err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}

	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape.Clone(),
		stride: append([]int(nil), strides...),
		dtype:  r.dtype,
		device: r.device,
		offset: offset,
	}, nil
}

// checkLayout verifies that every element addressed by the layout lies in a
// buffer of bufLen bytes. Size-zero layouts address nothing and always pass.
func checkLayout(shape Shape, strides []int, offset, itemSize, bufLen int) error {
	if shape.NumElements() == 0 {
		return nil
	}
	lo, hi := offset, offset
	for i, dim := range shape {
		span := (dim - 1) * strides[i]
		if span < 0 {
			lo += span
		} else {
			hi += span
		}
	}
	if lo < 0 || hi+itemSize > bufLen {
		return fmt.Errorf("layout shape=%v strides=%v offset=%d addresses bytes [%d, %d) outside buffer of %d bytes: %w",
			shape, strides, offset, lo, hi+itemSize, bufLen, ErrValue)
	}
	return nil
}

// Shape returns the array's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the array's byte strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Offset returns the byte offset of the first element.
func (r *RawTensor) Offset() int {
	return r.offset
}

// DType returns the array's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the array's device token.
func (r *RawTensor) Device() Device {
	return r.device
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ItemSize returns the byte size of one element.
func (r *RawTensor) ItemSize() int {
	return r.dtype.Size()
}

// ByteSize returns the number of bytes addressed by a packed copy.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Buffer returns the whole underlying buffer, independent of the view.
// WARNING: Direct access to shared memory. Backends only.
func (r *RawTensor) Buffer() []byte {
	return r.buffer.data
}

// SharesBuffer reports whether r and other are views of the same buffer.
func (r *RawTensor) SharesBuffer(other *RawTensor) bool {
	return other != nil && r.buffer == other.buffer
}

// IsContiguous reports whether the array is laid out in row-major order
// without gaps, starting at its offset.
func (r *RawTensor) IsContiguous() bool {
	if r.NumElements() <= 1 {
		return true
	}
	expected := r.dtype.Size()
	for i := len(r.shape) - 1; i >= 0; i-- {
		if r.shape[i] == 1 {
			continue
		}
		if r.stride[i] != expected {
			return false
		}
		expected *= r.shape[i]
	}
	return true
}

// Data returns the bytes of a contiguous array.
// Panics if the array is not contiguous.
func (r *RawTensor) Data() []byte {
	if !r.IsContiguous() {
		panic(fmt.Sprintf("Data() requires a contiguous array, got shape %v strides %v", r.shape, r.stride))
	}
	if r.NumElements() == 0 {
		return nil
	}
	return r.buffer.data[r.offset : r.offset+r.ByteSize()]
}

// Clone creates a shallow copy of the RawTensor sharing the buffer.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// Release decrements the buffer reference count and drops the memory once no
// array refers to it.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this array is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// String returns a short description of the array.
func (r *RawTensor) String() string {
	return fmt.Sprintf("Array[%s]%v strides=%v offset=%d on %s", r.dtype, r.shape, r.stride, r.offset, r.device)
}
