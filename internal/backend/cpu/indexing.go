package cpu

import (
	"fmt"

	"github.com/born-ml/ndview/internal/parallel"
	"github.com/born-ml/ndview/internal/tensor"
)

// Gather executes a take plan. Indices must already be normalized; a value
// outside the gathered axis is reported as ErrIndexOutOfBounds rather than
// read out of range.
func (cpu *CPUBackend) Gather(p *tensor.GatherPlan) (*tensor.RawTensor, error) {
	src := p.Source.Array
	result, err := tensor.NewRaw(p.Shape, src.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("gather: %w", err)
	}

	n := p.Shape.NumElements()
	if n == 0 {
		return result, nil
	}

	in, out := src.Buffer(), result.Data()
	size := src.ItemSize()
	err = parallel.Chunks(n, cpu.cfg, func(start, end int) error {
		it := tensor.NewStridedIter(p.Shape, []int{p.Source.Offset, 0}, p.Source.Strides, p.IndexStrides)
		it.Seek(start)
		for i := start; i < end; i++ {
			offs := it.Offsets()
			pos := offs[1]
			if pos < 0 || pos >= len(p.Indices) {
				return fmt.Errorf("gather: index position %d outside %d indices: %w", pos, len(p.Indices), tensor.ErrIndexOutOfBounds)
			}
			off := offs[0] + p.Indices[pos]*p.AxisStride
			if off < 0 || off+size > len(in) {
				return fmt.Errorf("gather: index %d reads outside the source buffer: %w", p.Indices[pos], tensor.ErrIndexOutOfBounds)
			}
			copy(out[i*size:(i+1)*size], in[off:off+size])
			it.Next()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Select executes a where plan: out = cond ? x : y, elementwise in the
// broadcast shape. The condition is read by truthiness in its own dtype.
func (cpu *CPUBackend) Select(p *tensor.SelectPlan) (*tensor.RawTensor, error) {
	if p.X.Array.DType() != p.DType || p.Y.Array.DType() != p.DType {
		return nil, fmt.Errorf("select: operands %s and %s must both be %s: %w",
			p.X.Array.DType(), p.Y.Array.DType(), p.DType, tensor.ErrDType)
	}

	result, err := tensor.NewRaw(p.Shape, p.DType, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	n := p.Shape.NumElements()
	if n == 0 {
		return result, nil
	}

	cond, xs, ys := p.Condition.Array.Buffer(), p.X.Array.Buffer(), p.Y.Array.Buffer()
	condType := p.Condition.Array.DType()
	out := result.Data()
	size := p.DType.Size()
	err = parallel.Chunks(n, cpu.cfg, func(start, end int) error {
		it := tensor.NewStridedIter(p.Shape,
			[]int{p.Condition.Offset, p.X.Offset, p.Y.Offset},
			p.Condition.Strides, p.X.Strides, p.Y.Strides)
		it.Seek(start)
		for i := start; i < end; i++ {
			offs := it.Offsets()
			var from []byte
			if tensor.Truthy(condType, cond[offs[0]:]) {
				from = xs[offs[1] : offs[1]+size]
			} else {
				from = ys[offs[2] : offs[2]+size]
			}
			copy(out[i*size:(i+1)*size], from)
			it.Next()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
