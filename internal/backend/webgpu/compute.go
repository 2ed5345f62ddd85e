//go:build windows

package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/ndview/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

const storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name, code string) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	shader := b.compileShader(name, code)
	// Auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a storage buffer holding data, padded to whole words.
func (b *Backend) createBuffer(data []byte) (*wgpu.Buffer, uint64) {
	data = padWords(data)
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer, size
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	// Queued kernels must run before the copy.
	b.flushCommands()

	stagingUsage := wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
	stagingBuffer := b.bufferPool.Acquire(size, stagingUsage)
	defer b.bufferPool.Release(stagingBuffer, size, stagingUsage)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	stagingBuffer.Unmap()

	return result, nil
}

// kernelInput is one read-only storage binding.
type kernelInput struct {
	data []byte
}

// runKernel binds inputs at bindings 0..k-1, the output at k and the params
// at k+1, dispatches one invocation per element and reads the output back.
func (b *Backend) runKernel(name, code string, count int, outSize uint64, params []int32, inputs ...kernelInput) ([]byte, error) {
	pipeline := b.getOrCreatePipeline(name, code)

	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	for i, in := range inputs {
		buf, size := b.createBuffer(in.data)
		defer buf.Release()
		//nolint:gosec // G115: binding numbers are small
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, size))
	}

	outSize = (outSize + 3) &^ 3
	bufferResult := b.bufferPool.Acquire(outSize, storageUsage)
	defer b.bufferPool.Release(bufferResult, outSize, storageUsage)
	//nolint:gosec // G115: binding numbers are small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)), bufferResult, 0, outSize))

	bufferParams, paramsSize := b.createBuffer(int32Bytes(params))
	defer bufferParams.Release()
	//nolint:gosec // G115: binding numbers are small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)+1), bufferParams, 0, paramsSize))

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	// Calculate workgroup count: ceil(count / workgroupSize)
	//nolint:gosec // G115: count is bounded by maxInvocations
	workgroups := uint32((count + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	b.queueCommand(encoder.Finish(nil))

	return b.readBuffer(bufferResult, outSize)
}

func (b *Backend) runGather(p *tensor.GatherPlan, params, indices []int32) (*tensor.RawTensor, error) {
	src := p.Source.Array
	n := p.Shape.NumElements()
	outBytes := n * src.ItemSize()

	//nolint:gosec // G115: outBytes is non-negative
	data, err := b.runKernel("gather", gatherShader, n, uint64(outBytes), params,
		kernelInput{data: src.Buffer()},
		kernelInput{data: int32Bytes(indices)},
	)
	if err != nil {
		return nil, fmt.Errorf("webgpu: gather: %w", err)
	}
	return tensor.WrapRaw(data[:outBytes], p.Shape, src.DType(), b.token)
}

func (b *Backend) runSelect(p *tensor.SelectPlan, params []int32) (*tensor.RawTensor, error) {
	cond := p.Condition.Array
	packed, err := b.host.ReadStrided(cond)
	if err != nil {
		return nil, fmt.Errorf("webgpu: select: %w", err)
	}

	n := p.Shape.NumElements()
	outBytes := n * p.DType.Size()

	//nolint:gosec // G115: outBytes is non-negative
	data, err := b.runKernel("select", selectShader, n, uint64(outBytes), params,
		kernelInput{data: uint32Bytes(conditionMask(cond.DType(), packed))},
		kernelInput{data: p.X.Array.Buffer()},
		kernelInput{data: p.Y.Array.Buffer()},
	)
	if err != nil {
		return nil, fmt.Errorf("webgpu: select: %w", err)
	}
	return tensor.WrapRaw(data[:outBytes], p.Shape, p.DType, b.token)
}
