package cpu

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/internal/tensor"
)

// ComplexMul multiplies x by filter, broadcasting the filter over the leading
// axes of x. Real filters (Float64) are applied as real gains.
func (cpu *CPUBackend) ComplexMul(x, filter *tensor.RawTensor) *tensor.RawTensor {
	fshape := filter.Shape()
	batch, spatial := splitSpatial("complexmul", x, len(fshape))
	if !spatial.Equal(fshape) {
		panic(fmt.Sprintf("complexmul: filter shape %v does not match trailing axes of %v", fshape, x.Shape()))
	}
	if x.DType() != tensor.Complex128 {
		panic(fmt.Sprintf("complexmul: input must be complex128, got %s", x.DType()))
	}

	result := tensor.MustNewRaw(x.Shape(), tensor.Complex128, cpu.device)
	src, dst := x.AsComplex128(), result.AsComplex128()
	size := fshape.NumElements()

	switch filter.DType() {
	case tensor.Complex128:
		f := filter.AsComplex128()
		parallel.For(batch, func(b int) {
			off := b * size
			for i, v := range f {
				dst[off+i] = src[off+i] * v
			}
		}, cpu.par)
	case tensor.Float64:
		f := filter.AsFloat64()
		parallel.For(batch, func(b int) {
			off := b * size
			for i, v := range f {
				dst[off+i] = src[off+i] * complex(v, 0)
			}
		}, cpu.par)
	default:
		panic(fmt.Sprintf("complexmul: unsupported filter dtype %s", filter.DType()))
	}
	return result
}

// Modulus returns the pointwise magnitude of x as Float64.
func (cpu *CPUBackend) Modulus(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), tensor.Float64, cpu.device)
	dst := result.AsFloat64()

	switch x.DType() {
	case tensor.Complex128:
		for i, v := range x.AsComplex128() {
			dst[i] = cmplx.Abs(v)
		}
	case tensor.Float64:
		for i, v := range x.AsFloat64() {
			dst[i] = math.Abs(v)
		}
	default:
		panic(fmt.Sprintf("modulus: unsupported dtype %s", x.DType()))
	}
	return result
}

// ModulusRotation accumulates x into a root-sum-square magnitude:
// sqrt(acc^2 + |x|^2). A nil acc starts a new accumulation.
func (cpu *CPUBackend) ModulusRotation(x, acc *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Complex128 {
		panic(fmt.Sprintf("modulus_rotation: input must be complex128, got %s", x.DType()))
	}
	if acc == nil {
		return cpu.Modulus(x)
	}
	if !acc.Shape().Equal(x.Shape()) || acc.DType() != tensor.Float64 {
		panic(fmt.Sprintf("modulus_rotation: accumulator %v (%s) does not match input %v",
			acc.Shape(), acc.DType(), x.Shape()))
	}

	result := tensor.MustNewRaw(x.Shape(), tensor.Float64, cpu.device)
	dst, prev := result.AsFloat64(), acc.AsFloat64()
	for i, v := range x.AsComplex128() {
		re, im := real(v), imag(v)
		dst[i] = math.Sqrt(prev[i]*prev[i] + re*re + im*im)
	}
	return result
}

// Real returns the real part of x as Float64.
func (cpu *CPUBackend) Real(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), tensor.Float64, cpu.device)
	dst := result.AsFloat64()

	switch x.DType() {
	case tensor.Complex128:
		for i, v := range x.AsComplex128() {
			dst[i] = real(v)
		}
	case tensor.Float64:
		copy(dst, x.AsFloat64())
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			dst[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("real: unsupported dtype %s", x.DType()))
	}
	return result
}
