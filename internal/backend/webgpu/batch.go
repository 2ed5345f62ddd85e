//go:build windows

package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"
)

// queueCommand adds a command buffer to the pending queue for batch submission.
// Commands are flushed before reading data back, on Synchronize, or when the
// batch size limit is reached.
func (b *Backend) queueCommand(cmdBuffer *wgpu.CommandBuffer) {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	b.pendingCommands = append(b.pendingCommands, cmdBuffer)

	// Auto-flush if batch size limit is reached (0 = no limit)
	if b.maxBatchSize > 0 && len(b.pendingCommands) >= b.maxBatchSize {
		b.flushCommandsLocked()
	}
}

// flushCommands submits all pending command buffers to the GPU queue.
func (b *Backend) flushCommands() {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	b.flushCommandsLocked()
}

// flushCommandsLocked submits all pending command buffers (must hold pendingMu lock).
func (b *Backend) flushCommandsLocked() {
	if len(b.pendingCommands) == 0 {
		return
	}
	b.queue.Submit(b.pendingCommands...)
	b.pendingCommands = b.pendingCommands[:0]
}

// PendingCommands returns the number of command buffers not yet submitted.
func (b *Backend) PendingCommands() int {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	return len(b.pendingCommands)
}
