package ops

import (
	"fmt"

	"github.com/born-ml/ndview/internal/tensor"
)

// Take gathers slices of a along axis at the positions held by indices.
//
// The output shape is a.shape[:axis] + indices.shape + a.shape[axis+1:], so
// a zero-dimensional indices array removes the axis. Negative axes and
// negative indices count from the end. Any index outside the axis after
// normalization fails the whole call with ErrIndexOutOfBounds.
func (e *Engine) Take(a, indices *tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	b, err := e.backendFor(a, indices)
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}

	ax, err := tensor.NormalizeAxis(axis, a.Rank())
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	if !indices.DType().IsInteger() {
		return nil, fmt.Errorf("take: indices must be integers, got %s: %w", indices.DType(), tensor.ErrDType)
	}

	packed, err := b.ReadStrided(indices)
	if err != nil {
		return nil, fmt.Errorf("take: read indices: %w", err)
	}
	positions, err := normalizeIndices(packed, indices.DType(), a.Shape()[ax])
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}

	plan := gatherPlan(a, indices.Shape(), ax, positions)
	return e.dispatch("take", b, plan.Shape, func() (*tensor.RawTensor, error) {
		return b.Gather(plan)
	})
}

// TakeInts is Take with indices given as a Go slice of the given shape.
// A nil shape means a one-dimensional list.
func (e *Engine) TakeInts(a *tensor.RawTensor, indices []int, shape tensor.Shape, axis int) (*tensor.RawTensor, error) {
	if shape == nil {
		shape = tensor.Shape{len(indices)}
	}
	values := make([]int64, len(indices))
	for i, v := range indices {
		values[i] = int64(v)
	}
	idx, err := tensor.FromSlice(values, shape, a.Device())
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	defer idx.Release()
	return e.Take(a, idx, axis)
}

// normalizeIndices decodes packed index elements and maps them into
// [0, extent).
func normalizeIndices(packed []byte, dt tensor.DataType, extent int) ([]int, error) {
	size := dt.Size()
	out := make([]int, len(packed)/size)
	for i := range out {
		v, ok := tensor.IndexValue(dt, packed[i*size:(i+1)*size])
		if !ok {
			return nil, fmt.Errorf("index at position %d does not fit an int: %w", i, tensor.ErrIndexOutOfBounds)
		}
		n := v
		if n < 0 {
			n += extent
		}
		if n < 0 || n >= extent {
			return nil, fmt.Errorf("index %d is out of bounds for axis with size %d: %w", v, extent, tensor.ErrIndexOutOfBounds)
		}
		out[i] = n
	}
	return out, nil
}

// gatherPlan lays out the output index space as the source axes before
// axis, then the index axes, then the source axes after axis.
func gatherPlan(a *tensor.RawTensor, idxShape tensor.Shape, axis int, positions []int) *tensor.GatherPlan {
	srcShape, srcStrides := a.Shape(), a.Strides()
	rank := len(srcShape) - 1 + len(idxShape)

	shape := make(tensor.Shape, 0, rank)
	shape = append(shape, srcShape[:axis]...)
	shape = append(shape, idxShape...)
	shape = append(shape, srcShape[axis+1:]...)

	sourceStrides := make([]int, rank)
	indexStrides := make([]int, rank)
	copy(sourceStrides, srcStrides[:axis])
	copy(indexStrides[axis:], idxShape.ComputeStrides())
	copy(sourceStrides[axis+len(idxShape):], srcStrides[axis+1:])

	return &tensor.GatherPlan{
		Shape:        shape,
		Source:       tensor.Operand{Array: a, Strides: sourceStrides, Offset: a.Offset()},
		Indices:      positions,
		IndexStrides: indexStrides,
		AxisStride:   srcStrides[axis],
	}
}
