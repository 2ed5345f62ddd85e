package index

import (
	"fmt"
	"math"

	"github.com/born-ml/ndview/internal/tensor"
)

// Normalize converts an indexing expression into a canonical list of specs
// for an array of the given rank.
//
// expr is either a single item or an Expr. New-axis items consume no source
// axis; every other item consumes one, left to right. An Ellipsis is replaced
// by full slices. Axes not covered by the result are implicitly full.
// Integer values are range-checked later by Resolve.
func Normalize(rank int, expr any) ([]Spec, error) {
	var items []any
	switch e := expr.(type) {
	case Expr:
		items = e
	case []any:
		items = e
	case []Spec:
		items = make([]any, len(e))
		for i, s := range e {
			items[i] = s
		}
	default:
		items = []any{expr}
	}

	specs := make([]Spec, 0, len(items))
	ellipsisAt := -1
	consumed := 0
	for i, item := range items {
		if m, ok := item.(Marker); ok && m == Ellipsis {
			if ellipsisAt >= 0 {
				return nil, fmt.Errorf("index: an index can only have a single ellipsis: %w", tensor.ErrValue)
			}
			ellipsisAt = len(specs)
			continue
		}

		spec, err := toSpec(item)
		if err != nil {
			return nil, fmt.Errorf("index: item %d: %w", i, err)
		}
		if spec.Kind != KindNewAxis {
			consumed++
		}
		specs = append(specs, spec)
	}

	if consumed > rank {
		return nil, fmt.Errorf("index: too many indices (%d) for array of dimension %d: %w",
			consumed, rank, tensor.ErrDimension)
	}

	if ellipsisAt >= 0 {
		fill := make([]Spec, rank-consumed)
		for i := range fill {
			fill[i] = SliceSpec(Slice{})
		}
		specs = append(specs[:ellipsisAt], append(fill, specs[ellipsisAt:]...)...)
	}

	return specs, nil
}

// toSpec converts one non-ellipsis item.
func toSpec(item any) (Spec, error) {
	switch x := item.(type) {
	case Spec:
		return x, nil
	case Slice:
		return SliceSpec(x), nil
	case *Slice:
		if x == nil {
			return Spec{}, fmt.Errorf("nil slice: %w", tensor.ErrValue)
		}
		return SliceSpec(*x), nil
	case Marker:
		if x == NewAxis {
			return NewAxisSpec(), nil
		}
		return Spec{}, fmt.Errorf("unknown marker %v: %w", x, tensor.ErrValue)
	case nil:
		// nil spells newaxis, as None does in NumPy.
		return NewAxisSpec(), nil
	}

	v, err := integerValue(item)
	if err != nil {
		return Spec{}, err
	}
	return Integer(v), nil
}

// integerValue accepts every Go integer type.
func integerValue(item any) (int, error) {
	switch x := item.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint:
		if uint64(x) > math.MaxInt {
			return 0, fmt.Errorf("index %d is out of range: %w", x, tensor.ErrDimension)
		}
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, fmt.Errorf("index %d is out of range: %w", x, tensor.ErrDimension)
		}
		return int(x), nil
	default:
		return 0, fmt.Errorf("unsupported index item of type %T: %w", item, tensor.ErrValue)
	}
}
