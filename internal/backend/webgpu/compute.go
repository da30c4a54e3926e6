//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/scatter/internal/tensor"
)

// Usage flags of pooled buffers.
const (
	resultUsage  = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	stagingUsage = wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
	inputUsage   = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc
)

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
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer and uploads initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with 16-byte alignment.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer through a pooled staging buffer.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := b.bufferPool.Acquire(size, stagingUsage)
	defer b.bufferPool.Release(staging, size, stagingUsage)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	staging.Unmap()

	return result, nil
}

// filterBuffer returns the device copy of a filter, uploading it on first use.
func (b *Backend) filterBuffer(filter *tensor.RawTensor) (*wgpu.Buffer, uint64) {
	b.filtersMu.Lock()
	defer b.filtersMu.Unlock()

	gain := filter.DType() == tensor.Float64
	//nolint:gosec // G115: element count is non-negative
	size := uint64(filter.NumElements()) * 8
	if gain {
		size /= 2
	}
	if buf, ok := b.filters[filter]; ok {
		return buf, size
	}

	var data []byte
	if gain {
		data = packFloat32(filter.AsFloat64())
	} else {
		data = packComplex64(filter.AsComplex128())
	}
	buf := b.createBuffer(data, inputUsage)
	b.filters[filter] = buf
	return buf, size
}

// gridFor returns the 2D workgroup grid covering n invocations and the
// invocation count of one grid row.
func gridFor(n int) (x, y, rowStride uint32) {
	groups := (n + workgroupSize - 1) / workgroupSize
	if groups <= maxWorkgroupsPerDim {
		//nolint:gosec // G115: bounded by maxWorkgroupsPerDim
		return uint32(groups), 1, uint32(groups * workgroupSize)
	}
	rows := (groups + maxWorkgroupsPerDim - 1) / maxWorkgroupsPerDim
	//nolint:gosec // G115: bounded by maxWorkgroupsPerDim
	return maxWorkgroupsPerDim, uint32(rows), maxWorkgroupsPerDim * workgroupSize
}

// binding is a read-only storage buffer bound to a kernel.
type binding struct {
	buf  *wgpu.Buffer
	size uint64
}

// runKernel dispatches an element-wise kernel over numElements items. Inputs
// are bound in order, followed by the result and the params uniform.
func (b *Backend) runKernel(name, code string, inputs []binding, resultSize uint64, numElements, filterSize int) ([]byte, error) {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()

	shader := b.compileShader(name, code)
	pipeline := b.getOrCreatePipeline(name, shader)

	bufferResult := b.bufferPool.Acquire(resultSize, resultUsage)
	defer b.bufferPool.Release(bufferResult, resultSize, resultUsage)

	gx, gy, rowStride := gridFor(numElements)
	params := make([]byte, 16)
	//nolint:gosec // G115: element counts are non-negative and checked by the caller
	binary.LittleEndian.PutUint32(params[0:4], uint32(numElements))
	//nolint:gosec // G115: filter sizes are non-negative
	binary.LittleEndian.PutUint32(params[4:8], uint32(filterSize))
	binary.LittleEndian.PutUint32(params[8:12], rowStride)
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	for i, in := range inputs {
		//nolint:gosec // G115: binding index is small
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), in.buf, 0, in.size))
	}
	//nolint:gosec // G115: binding index is small
	entries = append(entries,
		wgpu.BufferBindingEntry(uint32(len(inputs)), bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(uint32(len(inputs)+1), bufferParams, 0, 16),
	)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(gx, gy, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	out, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return nil, err
	}
	b.dispatches.Add(1)
	return out, nil
}

// packComplex64 converts complex128 values to interleaved float32 pairs.
func packComplex64(values []complex128) []byte {
	out := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[8*i:], math.Float32bits(float32(real(v))))
		binary.LittleEndian.PutUint32(out[8*i+4:], math.Float32bits(float32(imag(v))))
	}
	return out
}

// packFloat32 converts float64 values to float32 bytes.
func packFloat32(values []float64) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(float32(v)))
	}
	return out
}

// unpackComplex64 widens interleaved float32 pairs into dst.
func unpackComplex64(data []byte, dst []complex128) {
	for i := range dst {
		re := math.Float32frombits(binary.LittleEndian.Uint32(data[8*i:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(data[8*i+4:]))
		dst[i] = complex(float64(re), float64(im))
	}
}

// unpackFloat32 widens float32 bytes into dst.
func unpackFloat32(data []byte, dst []float64) {
	for i := range dst {
		dst[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:])))
	}
}
