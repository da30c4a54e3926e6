// Package cpu implements the scattering primitives on CPU in pure Go.
package cpu

import (
	"fmt"

	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/internal/tensor"
)

// CPUBackend implements tensor.Backend, tensor.LocalAverager and
// tensor.Integrator on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// Compile-time capability checks.
var (
	_ tensor.Backend       = (*CPUBackend)(nil)
	_ tensor.LocalAverager = (*CPUBackend)(nil)
	_ tensor.Integrator    = (*CPUBackend)(nil)
)

// New creates a new CPU backend using all available cores.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// splitSpatial returns the batch element count and the trailing spatial shape.
func splitSpatial(op string, x *tensor.RawTensor, ndim int) (int, tensor.Shape) {
	if ndim < 1 || ndim > len(x.Shape()) {
		panic(fmt.Sprintf("%s: %d spatial axes requested for shape %v", op, ndim, x.Shape()))
	}
	batch, spatial := x.Shape().Split(ndim)
	return batch.NumElements(), spatial
}

// toComplex128 returns the complex128 data of x, converting if needed.
// The returned slice is always a fresh copy.
func toComplex128(op string, x *tensor.RawTensor) []complex128 {
	switch x.DType() {
	case tensor.Float32, tensor.Float64, tensor.Complex64, tensor.Complex128:
		return tensor.Complex128Values(x)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}
}
