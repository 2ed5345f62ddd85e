package index

import (
	"fmt"

	"github.com/born-ml/ndview/internal/tensor"
)

// Indices resolves the slice against an axis of extent n and returns the
// clamped start, the step and the number of selected elements.
//
// Negative bounds count from the end. Bounds are then clamped to [0, n] for
// a positive step and to [-1, n-1] for a negative one, so the start of an
// empty selection is still well defined.
func (s Slice) Indices(n int) (start, step, length int, err error) {
	step = 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return 0, 0, 0, fmt.Errorf("slice step cannot be zero: %w", tensor.ErrValue)
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}

	clamp := func(p *int, def int) int {
		if p == nil {
			return def
		}
		v := *p
		if v < 0 {
			v += n
			if v < lower {
				v = lower
			}
		} else if v > upper {
			v = upper
		}
		return v
	}

	var stop int
	if step > 0 {
		start, stop = clamp(s.Start, lower), clamp(s.Stop, upper)
		if start < stop {
			length = (stop-start-1)/step + 1
		}
	} else {
		start, stop = clamp(s.Start, upper), clamp(s.Stop, lower)
		if stop < start {
			length = (start-stop-1)/(-step) + 1
		}
	}
	return start, step, length, nil
}

// Resolve folds specs against x and returns a view of x's buffer.
//
// Source axes are visited left to right; an integer collapses its axis, a
// slice keeps it with a scaled stride, and a new axis inserts a size-1,
// stride-0 axis at the current output position. Uncovered trailing axes pass
// through unchanged. Buffer contents are never read or copied.
func Resolve(x *tensor.RawTensor, specs []Spec) (*tensor.RawTensor, error) {
	srcShape, srcStrides := x.Shape(), x.Strides()
	rank := len(srcShape)

	shape := make(tensor.Shape, 0, rank+len(specs))
	strides := make([]int, 0, rank+len(specs))
	offset := x.Offset()

	axis := 0
	for i, spec := range specs {
		if spec.Kind != KindNewAxis && axis >= rank {
			return nil, fmt.Errorf("index: too many indices for array of dimension %d: %w", rank, tensor.ErrDimension)
		}

		switch spec.Kind {
		case KindNewAxis:
			shape = append(shape, 1)
			strides = append(strides, 0)

		case KindInteger:
			n := srcShape[axis]
			v := spec.Index
			if v < 0 {
				v += n
			}
			if v < 0 || v >= n {
				return nil, fmt.Errorf("index: index %d is out of bounds for axis %d with size %d: %w",
					spec.Index, axis, n, tensor.ErrDimension)
			}
			offset += v * srcStrides[axis]
			axis++

		case KindSlice:
			start, step, length, err := spec.Slice.Indices(srcShape[axis])
			if err != nil {
				return nil, fmt.Errorf("index: item %d: %w", i, err)
			}
			shape = append(shape, length)
			strides = append(strides, step*srcStrides[axis])
			offset += start * srcStrides[axis]
			axis++

		default:
			return nil, fmt.Errorf("index: unknown spec kind %d: %w", spec.Kind, tensor.ErrValue)
		}
	}

	for ; axis < rank; axis++ {
		shape = append(shape, srcShape[axis])
		strides = append(strides, srcStrides[axis])
	}

	return x.View(shape, strides, offset)
}

// Get normalizes items and resolves them against x: Get(a, 1, S(nil, 2))
// is a[1, :2]. A single Expr argument is used as the whole expression.
func Get(x *tensor.RawTensor, items ...any) (*tensor.RawTensor, error) {
	var expr any = Expr(items)
	if len(items) == 1 {
		expr = items[0]
	}
	specs, err := Normalize(x.Rank(), expr)
	if err != nil {
		return nil, err
	}
	return Resolve(x, specs)
}
