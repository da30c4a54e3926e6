//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooledPerKey bounds how many idle buffers of one size and usage are kept.
const maxPooledPerKey = 8

type bufferKey struct {
	size  uint64
	usage wgpu.BufferUsage
}

// BufferPool reuses GPU buffers between dispatches. A scattering cascade
// repeats the same few tensor sizes hundreds of times per call, so buffers
// are matched on exact size and usage.
type BufferPool struct {
	device *wgpu.Device
	free   map[bufferKey][]*wgpu.Buffer
	mu     sync.Mutex

	hits   uint64
	misses uint64
}

// NewBufferPool creates a new buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{
		device: device,
		free:   make(map[bufferKey][]*wgpu.Buffer),
	}
}

// Acquire returns an idle buffer of the given size and usage, or creates one.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := bufferKey{size: size, usage: usage}
	if idle := p.free[key]; len(idle) > 0 {
		buf := idle[len(idle)-1]
		p.free[key] = idle[:len(idle)-1]
		p.hits++
		return buf
	}

	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// Release returns a buffer to the pool. Buffers beyond the per-key limit are
// destroyed.
func (p *BufferPool) Release(buf *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := bufferKey{size: size, usage: usage}
	if len(p.free[key]) >= maxPooledPerKey {
		buf.Release()
		return
	}
	p.free[key] = append(p.free[key], buf)
}

// Clear releases all pooled buffers.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, idle := range p.free {
		for _, buf := range idle {
			buf.Release()
		}
		delete(p.free, key)
	}
}

// Stats returns reuse counters and the number of idle buffers.
func (p *BufferPool) Stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, idle := range p.free {
		pooled += len(idle)
	}
	return p.hits, p.misses, pooled
}
