//go:build windows

package webgpu

import (
	"math/bits"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPoolSize is the number of idle buffers kept per size class and usage.
const maxPoolSize = 16

// poolKey identifies interchangeable buffers.
type poolKey struct {
	class uint64
	usage wgpu.BufferUsage
}

// BufferPool manages GPU buffer reuse for kernel outputs and staging
// read-backs. Buffers are bucketed by usage and by size rounded up to a
// power of two, so any buffer in a bucket can serve any request in it.
type BufferPool struct {
	device *wgpu.Device
	idle   map[poolKey][]*wgpu.Buffer
	mu     sync.Mutex

	// Statistics
	totalAllocated uint64
	totalReleased  uint64
	poolHits       uint64
	poolMisses     uint64
}

// PoolStats reports buffer pool usage.
type PoolStats struct {
	Allocated uint64
	Released  uint64
	Hits      uint64
	Misses    uint64
	Pooled    int
}

// NewBufferPool creates a new buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{
		device: device,
		idle:   make(map[poolKey][]*wgpu.Buffer),
	}
}

// sizeClass rounds size up to a power of two, with a floor of 256 bytes.
func sizeClass(size uint64) uint64 {
	if size <= 256 {
		return 256
	}
	return 1 << bits.Len64(size-1)
}

// Acquire gets a buffer of at least size bytes with the given usage.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	key := poolKey{class: sizeClass(size), usage: usage}

	p.mu.Lock()
	defer p.mu.Unlock()

	if list := p.idle[key]; len(list) > 0 {
		buffer := list[len(list)-1]
		p.idle[key] = list[:len(list)-1]
		p.poolHits++
		return buffer
	}

	p.poolMisses++
	p.totalAllocated++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  key.class,
	})
}

// Release returns a buffer acquired for size and usage to the pool.
// If the bucket is full, the buffer is released immediately.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	key := poolKey{class: sizeClass(size), usage: usage}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalReleased++
	if len(p.idle[key]) >= maxPoolSize {
		buffer.Release()
		return
	}
	p.idle[key] = append(p.idle[key], buffer)
}

// Clear releases all pooled buffers.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, list := range p.idle {
		for _, buffer := range list {
			buffer.Release()
		}
		delete(p.idle, key)
	}
}

// Stats returns statistics about buffer pool usage.
func (p *BufferPool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	pooled := 0
	for _, list := range p.idle {
		pooled += len(list)
	}
	return PoolStats{
		Allocated: p.totalAllocated,
		Released:  p.totalReleased,
		Hits:      p.poolHits,
		Misses:    p.poolMisses,
		Pooled:    pooled,
	}
}
