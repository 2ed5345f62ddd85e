package ops

import (
	"fmt"

	"github.com/born-ml/ndview/internal/tensor"
)

// Copy materializes a into a new contiguous array on the same device.
func (e *Engine) Copy(a *tensor.RawTensor) (*tensor.RawTensor, error) {
	b, err := e.backendFor(a)
	if err != nil {
		return nil, fmt.Errorf("copy: %w", err)
	}
	return e.dispatch("copy", b, a.Shape(), func() (*tensor.RawTensor, error) {
		packed, err := b.ReadStrided(a)
		if err != nil {
			return nil, err
		}
		return tensor.WrapRaw(packed, a.Shape(), a.DType(), a.Device())
	})
}

// AsType returns a converted to dtype. The result is always a new array.
func (e *Engine) AsType(a *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	b, err := e.backendFor(a)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	return e.dispatch("cast", b, a.Shape(), func() (*tensor.RawTensor, error) {
		return b.Cast(a, dtype)
	})
}

// Assign writes src into the elements addressed by dst, the equivalent of
// dst[...] = src. src broadcasts to dst's shape and is converted to dst's
// dtype. The write is visible through every view sharing dst's buffer.
func (e *Engine) Assign(dst, src *tensor.RawTensor) error {
	b, err := e.backendFor(dst, src)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}

	strides, err := tensor.BroadcastStrides(src.Shape(), src.Strides(), dst.Shape())
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	stretched, err := src.View(dst.Shape(), strides, src.Offset())
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	defer stretched.Release()

	if src.DType() != dst.DType() {
		converted, err := e.castTo(b, stretched, dst.DType())
		if err != nil {
			return fmt.Errorf("assign: %w", err)
		}
		defer converted.Release()
		stretched = converted
	}

	packed, err := b.ReadStrided(stretched)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	if err := b.WriteStrided(dst, packed); err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	return nil
}
