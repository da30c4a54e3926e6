package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/internal/tensor"
)

// Integrate reduces the trailing ndim axes of x to the moments sum(|x|^p),
// one per entry of powers. The result is Float64 with shape
// [batch..., len(powers)].
//
// Example:
//
//	m := backend.Integrate(u, []float64{0.5, 1, 2}, 3) // [B, 3]
func (cpu *CPUBackend) Integrate(x *tensor.RawTensor, powers []float64, ndim int) *tensor.RawTensor {
	if len(powers) == 0 {
		panic("integrate: no powers")
	}
	batch, spatial := splitSpatial("integrate", x, ndim)
	batchShape, _ := x.Shape().Split(ndim)
	abs := cpu.Modulus(toReal64("integrate", cpu, x)).AsFloat64()

	result := tensor.MustNewRaw(batchShape.Concat(len(powers)), tensor.Float64, cpu.device)
	dst := result.AsFloat64()
	size := spatial.NumElements()

	parallel.For(batch, func(b int) {
		line := abs[b*size : (b+1)*size]
		scratch := make([]float64, size)
		for k, p := range powers {
			var m float64
			switch p {
			case 1:
				m = floats.Sum(line)
			case 2:
				m = floats.Dot(line, line)
			default:
				for i, v := range line {
					scratch[i] = math.Pow(v, p)
				}
				m = floats.Sum(scratch)
			}
			dst[b*len(powers)+k] = m
		}
	}, cpu.par)
	return result
}

// toReal64 returns a tensor Modulus accepts: complex128 or float64.
func toReal64(op string, cpu *CPUBackend, x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Complex128, tensor.Float64:
		return x
	case tensor.Float32:
		return cpu.Real(x)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}
}

// SamplePoints gathers x at the given spatial points. Each point holds one
// coordinate per trailing axis. The result keeps the dtype of x and has shape
// [batch..., len(points)].
func (cpu *CPUBackend) SamplePoints(x *tensor.RawTensor, points [][]int) *tensor.RawTensor {
	if len(points) == 0 {
		panic("sample_points: no points")
	}
	ndim := len(points[0])
	batch, spatial := splitSpatial("sample_points", x, ndim)
	batchShape, _ := x.Shape().Split(ndim)
	strides := spatial.ComputeStrides()

	offsets := make([]int, len(points))
	for i, p := range points {
		if len(p) != ndim {
			panic(fmt.Sprintf("sample_points: point %d has %d coordinates, want %d", i, len(p), ndim))
		}
		for a, c := range p {
			if c < 0 || c >= spatial[a] {
				panic(fmt.Sprintf("sample_points: point %v outside %v", p, spatial))
			}
			offsets[i] += c * strides[a]
		}
	}

	result := tensor.MustNewRaw(batchShape.Concat(len(points)), x.DType(), cpu.device)
	size := spatial.NumElements()
	switch x.DType() {
	case tensor.Float64:
		gatherPoints(x.AsFloat64(), result.AsFloat64(), batch, size, offsets)
	case tensor.Float32:
		gatherPoints(x.AsFloat32(), result.AsFloat32(), batch, size, offsets)
	case tensor.Complex128:
		gatherPoints(x.AsComplex128(), result.AsComplex128(), batch, size, offsets)
	case tensor.Complex64:
		gatherPoints(x.AsComplex64(), result.AsComplex64(), batch, size, offsets)
	default:
		panic(fmt.Sprintf("sample_points: unsupported dtype %s", x.DType()))
	}
	return result
}

func gatherPoints[T element](src, dst []T, batch, size int, offsets []int) {
	for b := 0; b < batch; b++ {
		for i, off := range offsets {
			dst[b*len(offsets)+i] = src[b*size+off]
		}
	}
}
