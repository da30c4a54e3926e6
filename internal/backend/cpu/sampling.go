package cpu

import (
	"fmt"

	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/internal/tensor"
)

// element is the set of dtypes the resampling kernels move around.
type element interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Subsample keeps every k-th sample along each of the trailing ndim axes,
// starting at index 0.
func (cpu *CPUBackend) Subsample(x *tensor.RawTensor, k, ndim int) *tensor.RawTensor {
	if k < 1 {
		panic(fmt.Sprintf("subsample: factor must be >= 1, got %d", k))
	}
	_, spatial := splitSpatial("subsample", x, ndim)
	if k == 1 {
		return x.Copy()
	}

	maps := make([][]int, ndim)
	for a, n := range spatial {
		m := make([]int, (n+k-1)/k)
		for i := range m {
			m[i] = i * k
		}
		maps[a] = m
	}
	return cpu.remap(x, ndim, maps)
}

// Pad extends the trailing len(pads) axes.
func (cpu *CPUBackend) Pad(x *tensor.RawTensor, pads [][2]int, mode tensor.PadMode) *tensor.RawTensor {
	_, spatial := splitSpatial("pad", x, len(pads))

	maps := make([][]int, len(pads))
	for a, n := range spatial {
		before, after := pads[a][0], pads[a][1]
		if before < 0 || after < 0 {
			panic(fmt.Sprintf("pad: negative padding %v on axis %d", pads[a], a))
		}
		m := make([]int, n+before+after)
		for i := range m {
			m[i] = padIndex(i-before, n, mode)
		}
		maps[a] = m
	}
	return cpu.remap(x, len(pads), maps)
}

// padIndex maps a possibly out-of-range coordinate onto the source axis.
// It returns -1 where the padded value is zero.
func padIndex(i, n int, mode tensor.PadMode) int {
	if i >= 0 && i < n {
		return i
	}
	switch mode {
	case tensor.PadZero:
		return -1
	case tensor.PadReflect:
		if n == 1 {
			return 0
		}
		period := 2 * (n - 1)
		j := i % period
		if j < 0 {
			j += period
		}
		if j >= n {
			j = period - j
		}
		return j
	default:
		panic(fmt.Sprintf("pad: unknown mode %d", mode))
	}
}

// Crop extracts the window [start, start+size) of the trailing axes.
func (cpu *CPUBackend) Crop(x *tensor.RawTensor, start, size []int) *tensor.RawTensor {
	if len(start) != len(size) {
		panic(fmt.Sprintf("crop: start %v and size %v differ in length", start, size))
	}
	_, spatial := splitSpatial("crop", x, len(start))

	maps := make([][]int, len(start))
	for a, n := range spatial {
		if start[a] < 0 || size[a] < 1 || start[a]+size[a] > n {
			panic(fmt.Sprintf("crop: window [%d,%d) out of range for axis of length %d",
				start[a], start[a]+size[a], n))
		}
		m := make([]int, size[a])
		for i := range m {
			m[i] = start[a] + i
		}
		maps[a] = m
	}
	return cpu.remap(x, len(start), maps)
}

// remap builds a tensor whose trailing axes are gathered from x through the
// per-axis coordinate maps. A map entry of -1 yields zero.
func (cpu *CPUBackend) remap(x *tensor.RawTensor, ndim int, maps [][]int) *tensor.RawTensor {
	batch, inSpatial := splitSpatial("remap", x, ndim)
	outSpatial := make(tensor.Shape, ndim)
	for a, m := range maps {
		outSpatial[a] = len(m)
	}
	batchShape, _ := x.Shape().Split(ndim)
	result := tensor.MustNewRaw(batchShape.Concat(outSpatial...), x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		remapData(x.AsFloat32(), result.AsFloat32(), batch, inSpatial, outSpatial, maps, cpu.par)
	case tensor.Float64:
		remapData(x.AsFloat64(), result.AsFloat64(), batch, inSpatial, outSpatial, maps, cpu.par)
	case tensor.Complex64:
		remapData(x.AsComplex64(), result.AsComplex64(), batch, inSpatial, outSpatial, maps, cpu.par)
	case tensor.Complex128:
		remapData(x.AsComplex128(), result.AsComplex128(), batch, inSpatial, outSpatial, maps, cpu.par)
	default:
		panic(fmt.Sprintf("remap: unsupported dtype %s", x.DType()))
	}
	return result
}

func remapData[T element](src, dst []T, batch int, inSpatial, outSpatial tensor.Shape, maps [][]int, cfg parallel.Config) {
	inStrides := inSpatial.ComputeStrides()
	inSize, outSize := inSpatial.NumElements(), outSpatial.NumElements()
	ndim := len(outSpatial)

	parallel.For(batch, func(b int) {
		in := src[b*inSize : (b+1)*inSize]
		out := dst[b*outSize : (b+1)*outSize]
		idx := make([]int, ndim)

		for o := range out {
			offset := 0
			for a := 0; a < ndim; a++ {
				s := maps[a][idx[a]]
				if s < 0 {
					offset = -1
					break
				}
				offset += s * inStrides[a]
			}
			if offset >= 0 {
				out[o] = in[offset]
			}

			// Advance the row-major output counter.
			for a := ndim - 1; a >= 0; a-- {
				idx[a]++
				if idx[a] < outSpatial[a] {
					break
				}
				idx[a] = 0
			}
		}
	}, cfg)
}

// Stack joins equally shaped tensors along a new axis dim.
func (cpu *CPUBackend) Stack(xs []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(xs) == 0 {
		panic("stack: no tensors")
	}
	shape := xs[0].Shape()
	dtype := xs[0].DType()
	if dim < 0 || dim > len(shape) {
		panic(fmt.Sprintf("stack: dimension %d out of range for %dD tensors", dim, len(shape)))
	}
	for i, x := range xs {
		if !x.Shape().Equal(shape) || x.DType() != dtype {
			panic(fmt.Sprintf("stack: tensor %d has shape %v (%s), want %v (%s)",
				i, x.Shape(), x.DType(), shape, dtype))
		}
	}

	outShape := make(tensor.Shape, 0, len(shape)+1)
	outShape = append(outShape, shape[:dim]...)
	outShape = append(outShape, len(xs))
	outShape = append(outShape, shape[dim:]...)
	result := tensor.MustNewRaw(outShape, dtype, cpu.device)

	outer := shape[:dim].NumElements()
	chunk := shape[dim:].NumElements() * dtype.Size()
	dst := result.Data()
	for o := 0; o < outer; o++ {
		for i, x := range xs {
			copy(dst[(o*len(xs)+i)*chunk:], x.Data()[o*chunk:(o+1)*chunk])
		}
	}
	return result
}
