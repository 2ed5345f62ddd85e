// Package ops implements the copying operations (take, where, copy and
// assign) on top of an explicit registry of backends.
//
// The engine computes what to move: output shapes, broadcast strides,
// normalized gather indices and dtype promotion. The backend selected by the
// operands' device performs the movement.
package ops

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/born-ml/ndview/internal/metrics"
	"github.com/born-ml/ndview/internal/tensor"
)

// Engine dispatches operations to the backend registered for the operands'
// device. It holds no global state; several engines may coexist.
type Engine struct {
	backends map[tensor.Device]tensor.Backend
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine) error

// WithBackend registers b for b.Device().
func WithBackend(b tensor.Backend) Option {
	return func(e *Engine) error {
		d := b.Device()
		if _, dup := e.backends[d]; dup {
			return fmt.Errorf("engine: backend for %s registered twice: %w", d, tensor.ErrValue)
		}
		e.backends[d] = b
		return nil
	}
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) error {
		e.logger = l
		return nil
	}
}

// WithMetrics sets the dispatch instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) error {
		e.metrics = m
		return nil
	}
}

// NewEngine creates an engine. At least one backend must be registered.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		backends: make(map[tensor.Device]tensor.Backend),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if len(e.backends) == 0 {
		return nil, fmt.Errorf("engine: no backend registered: %w", tensor.ErrValue)
	}
	return e, nil
}

// Backend returns the backend registered for d.
func (e *Engine) Backend(d tensor.Device) (tensor.Backend, error) {
	b, ok := e.backends[d]
	if !ok {
		return nil, fmt.Errorf("no backend registered for %s: %w", d, tensor.ErrUnavailable)
	}
	return b, nil
}

// Synchronize waits for every registered backend to finish enqueued work.
func (e *Engine) Synchronize() error {
	for d, b := range e.backends {
		if err := b.Synchronize(); err != nil {
			return fmt.Errorf("synchronize %s: %w", d, err)
		}
	}
	return nil
}

// backendFor checks that every operand lives on the same device and returns
// that device's backend.
func (e *Engine) backendFor(arrays ...*tensor.RawTensor) (tensor.Backend, error) {
	d := arrays[0].Device()
	for _, a := range arrays[1:] {
		if a.Device() != d {
			return nil, fmt.Errorf("operands on %s and %s: %w", d, a.Device(), tensor.ErrBackendMismatch)
		}
	}
	return e.Backend(d)
}

// dispatch runs one backend call with tracing and metrics.
func (e *Engine) dispatch(op string, b tensor.Backend, shape tensor.Shape, run func() (*tensor.RawTensor, error)) (*tensor.RawTensor, error) {
	device := b.Device().String()
	start := time.Now()
	out, err := run()
	elapsed := time.Since(start)

	e.metrics.Observe(op, device, elapsed, shape.NumElements(), err)
	if err != nil {
		e.logger.Debug("dispatch failed", "op", op, "device", device, "shape", shape, "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.logger.Debug("dispatch", "op", op, "device", device, "shape", shape, "dtype", out.DType(), "elapsed", elapsed)
	return out, nil
}
