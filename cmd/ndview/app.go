package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/born-ml/ndview/internal/backend/cpu"
	"github.com/born-ml/ndview/internal/backend/webgpu"
	"github.com/born-ml/ndview/internal/config"
	"github.com/born-ml/ndview/internal/metrics"
	"github.com/born-ml/ndview/internal/ops"
	"github.com/born-ml/ndview/internal/tensor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	device     string
	verbose    bool
	metrics    bool
}

// app is the engine and its ambient wiring for one command invocation.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	device   tensor.Device
	engine   *ops.Engine
	registry *prometheus.Registry
	release  func()
}

func newApp(flags rootFlags, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.device != "" {
		cfg.Device = flags.device
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	device, err := cfg.DeviceSpec()
	if err != nil {
		return nil, err
	}

	par := cfg.ParallelConfig()
	registry := prometheus.NewRegistry()
	opts := []ops.Option{
		ops.WithLogger(logger),
		ops.WithMetrics(metrics.New(registry)),
		ops.WithBackend(cpu.New(cpu.WithParallel(par))),
	}

	release := func() {}
	switch {
	case device.Kind == tensor.WebGPU:
		gpu, err := webgpu.New(webgpu.WithDeviceIndex(device.Index), webgpu.WithHostParallel(par))
		if err != nil {
			return nil, err
		}
		opts = append(opts, ops.WithBackend(gpu))
		release = gpu.Release
	case device != tensor.CPU:
		opts = append(opts, ops.WithBackend(cpu.New(cpu.WithDevice(device), cpu.WithParallel(par))))
	}

	engine, err := ops.NewEngine(opts...)
	if err != nil {
		release()
		return nil, err
	}
	logger.Debug("engine ready", "device", device.String(), "workers", par.NumWorkers)

	return &app{
		cfg:      cfg,
		logger:   logger,
		device:   device,
		engine:   engine,
		registry: registry,
		release:  release,
	}, nil
}

// Close waits for outstanding work and frees accelerator resources.
func (a *app) Close() error {
	err := a.engine.Synchronize()
	a.release()
	return err
}

// writeMetrics dumps the dispatch instruments in the text exposition format.
func (a *app) writeMetrics(w io.Writer) error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// arange builds an array of the given shape holding 0, 1, ... in row-major
// order on the app's device.
func (a *app) arange(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	flat, err := tensor.Arange(shape.NumElements(), dtype, a.device)
	if err != nil {
		return nil, err
	}
	defer flat.Release()
	return flat.View(shape, shape.ByteStrides(dtype.Size()), 0)
}

// values reads x back to the host as float64 for printing.
func (a *app) values(x *tensor.RawTensor) ([]float64, error) {
	converted, err := a.engine.AsType(x, tensor.Float64)
	if err != nil {
		return nil, err
	}
	defer converted.Release()
	if err := a.engine.Synchronize(); err != nil {
		return nil, err
	}
	return tensor.ToSlice[float64](converted)
}
