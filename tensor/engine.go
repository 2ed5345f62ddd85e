// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"log/slog"

	"github.com/born-ml/ndview/internal/metrics"
	"github.com/born-ml/ndview/internal/ops"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine runs take, where and copies on the backend that owns the operands.
// Operands must share a device; mixing devices fails with
// ErrBackendMismatch before any data moves.
type Engine = ops.Engine

// EngineOption configures an Engine.
type EngineOption = ops.Option

// NewEngine creates an engine. At least one backend is required.
//
// Example:
//
//	engine, err := tensor.NewEngine(tensor.WithBackend(cpu.New()))
//	out, err := engine.Where(cond, x, y)
func NewEngine(opts ...EngineOption) (*Engine, error) {
	return ops.NewEngine(opts...)
}

// WithBackend registers b for arrays on b.Device().
func WithBackend(b Backend) EngineOption {
	return ops.WithBackend(b)
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *slog.Logger) EngineOption {
	return ops.WithLogger(l)
}

// WithMetrics registers dispatch counters and histograms with reg.
func WithMetrics(reg prometheus.Registerer) EngineOption {
	return ops.WithMetrics(metrics.New(reg))
}
