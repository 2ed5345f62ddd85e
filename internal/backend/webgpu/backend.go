//go:build windows

// Package webgpu implements the accelerator backend on WebGPU compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// Host memory stays the source of truth for every array. Gather and select
// upload their operands, run a WGSL kernel and read the result back; strided
// transfers, casts and 1- or 2-byte dtypes run on host kernels.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/born-ml/ndview/internal/backend/cpu"
	"github.com/born-ml/ndview/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Backend implements tensor.Backend on a WebGPU device.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	token tensor.Device
	host  *cpu.CPUBackend

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	bufferPool *BufferPool

	// Command batching: encoded kernels are queued and submitted together
	// before the next read-back or on Synchronize.
	pendingCommands []*wgpu.CommandBuffer
	pendingMu       sync.Mutex
	maxBatchSize    int
}

// New creates a new WebGPU backend.
// Returns an error wrapping tensor.ErrUnavailable if WebGPU is not available.
func New(opts ...Option) (backend *Backend, err error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v: %w", r, tensor.ErrUnavailable)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w: %w", adapterErr, tensor.ErrUnavailable)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w: %w", deviceErr, tensor.ErrUnavailable)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue: %w", tensor.ErrUnavailable)
	}

	token := tensor.Device{Kind: tensor.WebGPU, Index: o.index}
	return &Backend{
		instance:     instance,
		adapter:      adapter,
		device:       device,
		queue:        queue,
		token:        token,
		host:         cpu.New(cpu.WithDevice(token), cpu.WithParallel(o.host)),
		shaders:      make(map[string]*wgpu.ShaderModule),
		pipelines:    make(map[string]*wgpu.ComputePipeline),
		bufferPool:   NewBufferPool(device),
		maxBatchSize: o.maxBatchSize,
	}, nil
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.flushCommands()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bufferPool != nil {
		b.bufferPool.Clear()
		b.bufferPool = nil
	}
	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil
	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return b.token
}

// Synchronize submits every queued command buffer.
func (b *Backend) Synchronize() error {
	b.flushCommands()
	return nil
}

// ReadStrided packs the elements addressed by x on the host.
func (b *Backend) ReadStrided(x *tensor.RawTensor) ([]byte, error) {
	return b.host.ReadStrided(x)
}

// WriteStrided scatters data into x on the host.
func (b *Backend) WriteStrided(x *tensor.RawTensor, data []byte) error {
	return b.host.WriteStrided(x, data)
}

// Cast converts x on the host.
func (b *Backend) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return b.host.Cast(x, dtype)
}

// Gather runs the gather kernel, or the host kernel when the plan's dtype,
// rank or size is outside what the shader handles.
func (b *Backend) Gather(p *tensor.GatherPlan) (*tensor.RawTensor, error) {
	params, indices, ok := gatherParams(p)
	if !ok {
		return b.host.Gather(p)
	}
	return b.runGather(p, params, indices)
}

// Select runs the select kernel, or the host kernel when the plan's dtype,
// rank or size is outside what the shader handles.
func (b *Backend) Select(p *tensor.SelectPlan) (*tensor.RawTensor, error) {
	if p.X.Array.DType() != p.DType || p.Y.Array.DType() != p.DType {
		return nil, fmt.Errorf("select: operands %s and %s must both be %s: %w",
			p.X.Array.DType(), p.Y.Array.DType(), p.DType, tensor.ErrDType)
	}
	params, ok := selectParams(p)
	if !ok {
		return b.host.Select(p)
	}
	return b.runSelect(p, params)
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

var _ tensor.Backend = (*Backend)(nil)
