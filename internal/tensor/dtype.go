// Package tensor provides the core array types for the ndview engine: shapes,
// byte strides, dtypes, reference-counted buffers and the backend contract.
package tensor

import (
	"fmt"
	"strings"

	"github.com/x448/float16"
)

// DType is a constraint for Go element types that map onto a DataType.
// float16.Float16 satisfies it through ~uint16.
type DType interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types.
const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
)

// Kind groups data types for promotion.
type Kind int

// Data type kinds.
const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
)

// AllDataTypes lists every supported data type in rank order.
var AllDataTypes = []DataType{
	Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float16, Float32, Float64,
}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// Kind returns the promotion kind of the data type.
func (dt DataType) Kind() Kind {
	switch dt {
	case Bool:
		return KindBool
	case Int8, Int16, Int32, Int64:
		return KindInt
	case Uint8, Uint16, Uint32, Uint64:
		return KindUint
	default:
		return KindFloat
	}
}

// IsInteger reports whether the data type is a signed or unsigned integer.
func (dt DataType) IsInteger() bool {
	k := dt.Kind()
	return k == KindInt || k == KindUint
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType parses a data type name such as "float32".
func ParseDataType(name string) (DataType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, dt := range AllDataTypes {
		if dt.String() == name {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unknown dtype %q: %w", name, ErrDType)
}

// signedOfSize returns the signed integer type with the given byte size.
func signedOfSize(size int) (DataType, bool) {
	switch size {
	case 1:
		return Int8, true
	case 2:
		return Int16, true
	case 4:
		return Int32, true
	case 8:
		return Int64, true
	}
	return 0, false
}

// PromoteTypes returns the result type of combining a and b elementwise.
//
// The order is total: bool promotes to anything, a float absorbs any
// non-float, same-kind pairs take the wider type, and mixed signed/unsigned
// integers take the smallest signed type able to hold both, or float64 when
// no such integer exists.
func PromoteTypes(a, b DataType) DataType {
	if a == b {
		return a
	}
	ka, kb := a.Kind(), b.Kind()
	switch {
	case ka == KindBool:
		return b
	case kb == KindBool:
		return a
	case ka == kb:
		if a.Size() >= b.Size() {
			return a
		}
		return b
	case ka == KindFloat:
		return a
	case kb == KindFloat:
		return b
	}

	signed, unsigned := a, b
	if ka == KindUint {
		signed, unsigned = b, a
	}
	size := max(signed.Size(), unsigned.Size()*2)
	if dt, ok := signedOfSize(size); ok {
		return dt
	}
	return Float64
}

// ResultType folds PromoteTypes over one or more data types.
func ResultType(first DataType, rest ...DataType) DataType {
	dt := first
	for _, other := range rest {
		dt = PromoteTypes(dt, other)
	}
	return dt
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float16.Float16:
		return Float16
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic(fmt.Sprintf("unsupported type %T", dummy))
	}
}

// DataTypeOf returns the DataType corresponding to T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	return inferDataType(dummy)
}
