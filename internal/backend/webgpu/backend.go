//go:build windows

// Package webgpu implements the scattering primitives with WebGPU compute
// shaders. Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO
// bindings.
//
// The element-wise complex kernels (filter multiply, modulus, rotation
// modulus) run on the GPU in single precision. Transforms, resampling and
// integration are delegated to the CPU backend. Local averaging is not
// offered, so scattering objects using it fail with a capability error.
package webgpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/scatter/internal/backend/cpu"
	"github.com/born-ml/scatter/internal/tensor"
)

// Backend implements tensor.Backend and tensor.Integrator on GPU using WebGPU.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	// Filters are immutable once built, so their uploads are kept per tensor.
	filters   map[*tensor.RawTensor]*wgpu.Buffer
	filtersMu sync.Mutex

	// Dispatches are serialized; the queue is shared.
	dispatchMu sync.Mutex

	// dispatches counts kernels whose results were read back from the device.
	dispatches atomic.Uint64

	adapterInfo *wgpu.AdapterInfo
	bufferPool  *BufferPool
	host        *cpu.CPUBackend
}

// Compile-time capability checks.
var (
	_ tensor.Backend    = (*Backend)(nil)
	_ tensor.Integrator = (*Backend)(nil)
)

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	adapterInfo := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		filters:     make(map[*tensor.RawTensor]*wgpu.Buffer),
		adapterInfo: &adapterInfo,
		bufferPool:  NewBufferPool(device),
		host:        cpu.New(),
	}, nil
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.filtersMu.Lock()
	for _, buf := range b.filters {
		buf.Release()
	}
	b.filters = nil
	b.filtersMu.Unlock()

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
	if b.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", b.adapterInfo.Name, b.adapterInfo.VendorName)
	}
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// PoolStats reports result-buffer reuse.
func (b *Backend) PoolStats() (hits, misses uint64, pooled int) {
	return b.bufferPool.Stats()
}

// Dispatches returns how many kernels completed on the GPU. Operations that
// ran on the host (small tensors, failed readback) are not counted.
func (b *Backend) Dispatches() uint64 {
	return b.dispatches.Load()
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

// AdapterInfo returns information about the GPU adapter.
func (b *Backend) AdapterInfo() *wgpu.AdapterInfo {
	return b.adapterInfo
}
