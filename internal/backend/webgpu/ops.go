//go:build windows

package webgpu

import (
	"fmt"

	"github.com/born-ml/scatter/internal/tensor"
)

// minGPUElements is the size below which kernels run on the host; upload and
// readback dominate for tiny tensors.
const minGPUElements = 1024

// ComplexMul multiplies x by filter on GPU, broadcasting the filter over the
// leading axes of x.
func (b *Backend) ComplexMul(x, filter *tensor.RawTensor) *tensor.RawTensor {
	fshape := filter.Shape()
	if len(fshape) > len(x.Shape()) || !x.Shape()[len(x.Shape())-len(fshape):].Equal(fshape) {
		panic(fmt.Sprintf("complexmul: filter shape %v does not match trailing axes of %v", fshape, x.Shape()))
	}
	if x.DType() != tensor.Complex128 {
		panic(fmt.Sprintf("complexmul: input must be complex128, got %s", x.DType()))
	}
	n := x.NumElements()
	if n < minGPUElements {
		return b.host.ComplexMul(x, filter)
	}

	name, code := "complex_mul", complexMulShader
	switch filter.DType() {
	case tensor.Complex128:
	case tensor.Float64:
		name, code = "gain_mul", gainMulShader
	default:
		panic(fmt.Sprintf("complexmul: unsupported filter dtype %s", filter.DType()))
	}

	in := b.createBuffer(packComplex64(x.AsComplex128()), inputUsage)
	defer in.Release()
	fbuf, fsize := b.filterBuffer(filter)

	//nolint:gosec // G115: element count is non-negative
	size := uint64(n) * 8
	out, err := b.runKernel(name, code, []binding{{in, size}, {fbuf, fsize}}, size, n, fshape.NumElements())
	if err != nil {
		return b.host.ComplexMul(x, filter)
	}

	result := tensor.MustNewRaw(x.Shape(), tensor.Complex128, tensor.WebGPU)
	unpackComplex64(out, result.AsComplex128())
	return result
}

// Modulus returns |x| as Float64. Complex input runs on GPU.
func (b *Backend) Modulus(x *tensor.RawTensor) *tensor.RawTensor {
	n := x.NumElements()
	if x.DType() != tensor.Complex128 || n < minGPUElements {
		return b.host.Modulus(x)
	}

	in := b.createBuffer(packComplex64(x.AsComplex128()), inputUsage)
	defer in.Release()

	//nolint:gosec // G115: element count is non-negative
	size := uint64(n)
	out, err := b.runKernel("modulus", modulusShader, []binding{{in, size * 8}}, size*4, n, 0)
	if err != nil {
		return b.host.Modulus(x)
	}

	result := tensor.MustNewRaw(x.Shape(), tensor.Float64, tensor.WebGPU)
	unpackFloat32(out, result.AsFloat64())
	return result
}

// ModulusRotation returns sqrt(acc^2 + |x|^2); a nil acc starts a new
// accumulation.
func (b *Backend) ModulusRotation(x, acc *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Complex128 {
		panic(fmt.Sprintf("modulus_rotation: input must be complex128, got %s", x.DType()))
	}
	if acc == nil {
		return b.Modulus(x)
	}
	if !acc.Shape().Equal(x.Shape()) || acc.DType() != tensor.Float64 {
		panic(fmt.Sprintf("modulus_rotation: accumulator %v (%s) does not match input %v",
			acc.Shape(), acc.DType(), x.Shape()))
	}
	n := x.NumElements()
	if n < minGPUElements {
		return b.host.ModulusRotation(x, acc)
	}

	in := b.createBuffer(packComplex64(x.AsComplex128()), inputUsage)
	defer in.Release()
	prev := b.createBuffer(packFloat32(acc.AsFloat64()), inputUsage)
	defer prev.Release()

	//nolint:gosec // G115: element count is non-negative
	size := uint64(n)
	out, err := b.runKernel("modulus_rotation", modulusRotationShader,
		[]binding{{in, size * 8}, {prev, size * 4}}, size*4, n, 0)
	if err != nil {
		return b.host.ModulusRotation(x, acc)
	}

	result := tensor.MustNewRaw(x.Shape(), tensor.Float64, tensor.WebGPU)
	unpackFloat32(out, result.AsFloat64())
	return result
}

// FFT runs on the host backend.
func (b *Backend) FFT(x *tensor.RawTensor, ndim int) *tensor.RawTensor {
	return b.host.FFT(x, ndim)
}

// IFFT runs on the host backend.
func (b *Backend) IFFT(x *tensor.RawTensor, ndim int) *tensor.RawTensor {
	return b.host.IFFT(x, ndim)
}

// Real returns the real part of x as Float64.
func (b *Backend) Real(x *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Real(x)
}

// Subsample keeps every k-th sample along the trailing ndim axes.
func (b *Backend) Subsample(x *tensor.RawTensor, k, ndim int) *tensor.RawTensor {
	return b.host.Subsample(x, k, ndim)
}

// Pad extends the trailing axes of x.
func (b *Backend) Pad(x *tensor.RawTensor, pads [][2]int, mode tensor.PadMode) *tensor.RawTensor {
	return b.host.Pad(x, pads, mode)
}

// Crop extracts a window of the trailing axes of x.
func (b *Backend) Crop(x *tensor.RawTensor, start, size []int) *tensor.RawTensor {
	return b.host.Crop(x, start, size)
}

// Stack joins equally shaped tensors along a new axis.
func (b *Backend) Stack(xs []*tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.host.Stack(xs, dim)
}

// Integrate reduces the trailing ndim axes to global moments.
func (b *Backend) Integrate(x *tensor.RawTensor, powers []float64, ndim int) *tensor.RawTensor {
	return b.host.Integrate(x, powers, ndim)
}
