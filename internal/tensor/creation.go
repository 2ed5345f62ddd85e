package tensor

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// FromSlice creates a contiguous array from a Go slice.
// The slice is copied into the array's memory.
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d: %w",
			shape, shape.NumElements(), len(data), ErrDimension)
	}

	dtype := DataTypeOf[T]()
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}

	buf := raw.Data()
	size := dtype.Size()
	for i, v := range data {
		encodeValue(buf[i*size:(i+1)*size], v)
	}
	return raw, nil
}

// Scalar creates a zero-dimensional array holding v.
func Scalar[T DType](v T, device Device) (*RawTensor, error) {
	return FromSlice([]T{v}, Shape{}, device)
}

// Arange creates a 1-D array holding 0, 1, ..., n-1 converted to dtype.
func Arange(n int, dtype DataType, device Device) (*RawTensor, error) {
	raw, err := NewRaw(Shape{n}, dtype, device)
	if err != nil {
		return nil, err
	}
	buf := raw.Data()
	size := dtype.Size()
	for i := 0; i < n; i++ {
		storeInt64(dtype, buf[i*size:(i+1)*size], int64(i))
	}
	return raw, nil
}

// ToSlice reads the elements addressed by r in row-major order.
// It reads host memory directly and is meant for tests and interop; it does
// not wait for pending accelerator work.
func ToSlice[T DType](r *RawTensor) ([]T, error) {
	if want := DataTypeOf[T](); want != r.dtype {
		return nil, fmt.Errorf("cannot read %s array as %s: %w", r.dtype, want, ErrDType)
	}

	n := r.NumElements()
	out := make([]T, n)
	if n == 0 {
		return out, nil
	}

	buf := r.Buffer()
	size := r.dtype.Size()
	it := NewStridedIter(r.shape, []int{r.offset}, r.stride)
	for i := 0; i < n; i++ {
		off := it.Offsets()[0]
		out[i] = decodeValue[T](buf[off : off+size])
		it.Next()
	}
	return out, nil
}

//nolint:gosec // Bit-preserving conversions between same-width integers.
func encodeValue[T DType](b []byte, v T) {
	switch x := any(v).(type) {
	case bool:
		b[0] = boolByte(x)
	case int8:
		b[0] = byte(x)
	case int16:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(x))
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(x))
	case uint8:
		b[0] = x
	case float16.Float16:
		binary.LittleEndian.PutUint16(b, x.Bits())
	case uint16:
		binary.LittleEndian.PutUint16(b, x)
	case uint32:
		binary.LittleEndian.PutUint32(b, x)
	case uint64:
		binary.LittleEndian.PutUint64(b, x)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(x))
	default:
		panic(fmt.Sprintf("unsupported type %T", v))
	}
}

//nolint:gosec // Bit-preserving conversions between same-width integers.
func decodeValue[T DType](b []byte) T {
	var v any
	var dummy T
	switch any(dummy).(type) {
	case bool:
		v = b[0] != 0
	case int8:
		v = int8(b[0])
	case int16:
		v = int16(binary.LittleEndian.Uint16(b))
	case int32:
		v = int32(binary.LittleEndian.Uint32(b))
	case int64:
		v = int64(binary.LittleEndian.Uint64(b))
	case uint8:
		v = b[0]
	case float16.Float16:
		v = float16.Frombits(binary.LittleEndian.Uint16(b))
	case uint16:
		v = binary.LittleEndian.Uint16(b)
	case uint32:
		v = binary.LittleEndian.Uint32(b)
	case uint64:
		v = binary.LittleEndian.Uint64(b)
	case float32:
		v = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case float64:
		v = math.Float64frombits(binary.LittleEndian.Uint64(b))
	default:
		panic(fmt.Sprintf("unsupported type %T", dummy))
	}
	return v.(T)
}
