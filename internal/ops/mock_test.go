package ops

import (
	"sync/atomic"

	"github.com/born-ml/ndview/internal/tensor"
)

// countingBackend wraps a backend and counts data-moving calls.
type countingBackend struct {
	tensor.Backend
	calls atomic.Int64
}

func (c *countingBackend) ReadStrided(x *tensor.RawTensor) ([]byte, error) {
	c.calls.Add(1)
	return c.Backend.ReadStrided(x)
}

func (c *countingBackend) WriteStrided(x *tensor.RawTensor, data []byte) error {
	c.calls.Add(1)
	return c.Backend.WriteStrided(x, data)
}

func (c *countingBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	c.calls.Add(1)
	return c.Backend.Cast(x, dtype)
}

func (c *countingBackend) Gather(p *tensor.GatherPlan) (*tensor.RawTensor, error) {
	c.calls.Add(1)
	return c.Backend.Gather(p)
}

func (c *countingBackend) Select(p *tensor.SelectPlan) (*tensor.RawTensor, error) {
	c.calls.Add(1)
	return c.Backend.Select(p)
}
