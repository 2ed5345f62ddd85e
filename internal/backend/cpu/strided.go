package cpu

import (
	"fmt"

	"github.com/born-ml/ndview/internal/parallel"
	"github.com/born-ml/ndview/internal/tensor"
)

// ReadStrided packs the elements addressed by x into row-major order.
func (cpu *CPUBackend) ReadStrided(x *tensor.RawTensor) ([]byte, error) {
	n := x.NumElements()
	size := x.ItemSize()
	out := make([]byte, n*size)
	if n == 0 {
		return out, nil
	}
	if x.IsContiguous() {
		copy(out, x.Data())
		return out, nil
	}

	buf := x.Buffer()
	err := parallel.Chunks(n, cpu.cfg, func(start, end int) error {
		it := tensor.NewStridedIter(x.Shape(), []int{x.Offset()}, x.Strides())
		it.Seek(start)
		for i := start; i < end; i++ {
			off := it.Offsets()[0]
			copy(out[i*size:(i+1)*size], buf[off:off+size])
			it.Next()
		}
		return nil
	})
	return out, err
}

// WriteStrided scatters packed row-major bytes into the elements addressed
// by x. When x addresses the same element more than once (a stride-0 axis)
// the last write wins.
func (cpu *CPUBackend) WriteStrided(x *tensor.RawTensor, data []byte) error {
	n := x.NumElements()
	size := x.ItemSize()
	if len(data) != n*size {
		return fmt.Errorf("write: got %d bytes for %d elements of %s: %w", len(data), n, x.DType(), tensor.ErrDimension)
	}
	if n == 0 {
		return nil
	}
	if x.IsContiguous() {
		copy(x.Data(), data)
		return nil
	}

	buf := x.Buffer()
	it := tensor.NewStridedIter(x.Shape(), []int{x.Offset()}, x.Strides())
	for i := 0; i < n; i++ {
		off := it.Offsets()[0]
		copy(buf[off:off+size], data[i*size:(i+1)*size])
		it.Next()
	}
	return nil
}

// Cast returns a new contiguous array holding x converted to dtype.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}

	n := x.NumElements()
	if n == 0 {
		return result, nil
	}

	src, dst := x.Buffer(), result.Data()
	srcType := x.DType()
	srcSize, dstSize := srcType.Size(), dtype.Size()
	err = parallel.Chunks(n, cpu.cfg, func(start, end int) error {
		it := tensor.NewStridedIter(x.Shape(), []int{x.Offset()}, x.Strides())
		it.Seek(start)
		for i := start; i < end; i++ {
			off := it.Offsets()[0]
			tensor.ConvertElement(dst[i*dstSize:(i+1)*dstSize], dtype, src[off:off+srcSize], srcType)
			it.Next()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	return result, nil
}
