package tensor

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// Element codec. Buffers are little-endian; every element is decoded into one
// of three carriers (int64, uint64, float64) chosen by the source kind so that
// 64-bit integers survive casts between integer types exactly.

func loadInt64(dt DataType, b []byte) int64 {
	switch dt {
	case Int8:
		return int64(int8(b[0]))
	case Int16:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case Int32:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	case Int64:
		return int64(binary.LittleEndian.Uint64(b))
	}
	panic("loadInt64: not a signed integer dtype: " + dt.String())
}

func loadUint64(dt DataType, b []byte) uint64 {
	switch dt {
	case Bool:
		if b[0] != 0 {
			return 1
		}
		return 0
	case Uint8:
		return uint64(b[0])
	case Uint16:
		return uint64(binary.LittleEndian.Uint16(b))
	case Uint32:
		return uint64(binary.LittleEndian.Uint32(b))
	case Uint64:
		return binary.LittleEndian.Uint64(b)
	}
	panic("loadUint64: not an unsigned dtype: " + dt.String())
}

func loadFloat64(dt DataType, b []byte) float64 {
	switch dt {
	case Float16:
		return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	panic("loadFloat64: not a float dtype: " + dt.String())
}

//nolint:gosec // Narrowing integer conversions wrap, matching C casts.
func storeInt64(dt DataType, b []byte, v int64) {
	switch dt {
	case Bool:
		b[0] = boolByte(v != 0)
	case Int8, Uint8:
		b[0] = byte(v)
	case Int16, Uint16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case Int32, Uint32:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case Int64, Uint64:
		binary.LittleEndian.PutUint64(b, uint64(v))
	default:
		storeFloat64(dt, b, float64(v))
	}
}

//nolint:gosec // Narrowing integer conversions wrap, matching C casts.
func storeUint64(dt DataType, b []byte, v uint64) {
	if dt.Kind() == KindFloat {
		storeFloat64(dt, b, float64(v))
		return
	}
	storeInt64(dt, b, int64(v))
}

func storeFloat64(dt DataType, b []byte, v float64) {
	switch dt {
	case Float16:
		binary.LittleEndian.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
	case Float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	case Float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	case Bool:
		b[0] = boolByte(v != 0)
	case Uint8, Uint16, Uint32, Uint64:
		storeInt64(dt, b, int64(uint64(v)))
	default:
		storeInt64(dt, b, int64(v))
	}
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// ConvertElement decodes one element of srcType from src and stores it as
// dstType into dst. Floats convert to integers by truncation; any nonzero
// value converts to true.
func ConvertElement(dst []byte, dstType DataType, src []byte, srcType DataType) {
	if dstType == srcType {
		copy(dst[:dstType.Size()], src)
		return
	}
	switch srcType.Kind() {
	case KindInt:
		storeInt64(dstType, dst, loadInt64(srcType, src))
	case KindFloat:
		storeFloat64(dstType, dst, loadFloat64(srcType, src))
	default:
		storeUint64(dstType, dst, loadUint64(srcType, src))
	}
}

// Truthy reports whether the element is nonzero. NaN is truthy and negative
// zero is not.
func Truthy(dt DataType, b []byte) bool {
	if dt.Kind() == KindFloat {
		return loadFloat64(dt, b) != 0
	}
	for _, x := range b[:dt.Size()] {
		if x != 0 {
			return true
		}
	}
	return false
}

// IndexValue decodes an integer element as a signed position. ok is false
// when an unsigned value does not fit into an int.
func IndexValue(dt DataType, b []byte) (v int, ok bool) {
	switch dt.Kind() {
	case KindInt:
		return int(loadInt64(dt, b)), true
	case KindUint:
		u := loadUint64(dt, b)
		if u > math.MaxInt64 {
			return 0, false
		}
		return int(u), true
	}
	return 0, false
}
