package ops

import (
	"fmt"

	"github.com/born-ml/ndview/internal/tensor"
)

// Where picks x where condition is truthy and y elsewhere.
//
// The three operands broadcast together. x and y are promoted to a common
// dtype with tensor.PromoteTypes; the condition keeps its own dtype and is
// read as nonzero/zero.
func (e *Engine) Where(condition, x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	b, err := e.backendFor(condition, x, y)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}

	shape, err := tensor.BroadcastShapes(condition.Shape(), x.Shape(), y.Shape())
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}

	dtype := tensor.PromoteTypes(x.DType(), y.DType())
	if x, err = e.castTo(b, x, dtype); err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	if y, err = e.castTo(b, y, dtype); err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}

	plan := &tensor.SelectPlan{Shape: shape, DType: dtype}
	for _, op := range []struct {
		dst *tensor.Operand
		src *tensor.RawTensor
	}{
		{&plan.Condition, condition},
		{&plan.X, x},
		{&plan.Y, y},
	} {
		*op.dst, err = broadcastOperand(op.src, shape)
		if err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
	}

	return e.dispatch("where", b, shape, func() (*tensor.RawTensor, error) {
		return b.Select(plan)
	})
}

// castTo returns x unchanged when it already has dtype.
func (e *Engine) castTo(b tensor.Backend, x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if x.DType() == dtype {
		return x, nil
	}
	return e.dispatch("cast", b, x.Shape(), func() (*tensor.RawTensor, error) {
		return b.Cast(x, dtype)
	})
}

func broadcastOperand(a *tensor.RawTensor, shape tensor.Shape) (tensor.Operand, error) {
	strides, err := tensor.BroadcastStrides(a.Shape(), a.Strides(), shape)
	if err != nil {
		return tensor.Operand{}, err
	}
	return tensor.Operand{Array: a, Strides: strides, Offset: a.Offset()}, nil
}
