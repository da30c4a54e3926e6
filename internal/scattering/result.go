package scattering

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/scatter/internal/tensor"
)

// Result holds the coefficients of one Scatter call. The caller owns it.
type Result struct {
	// Stacked is Float64 shaped [batch..., paths, trailing...].
	Stacked *tensor.RawTensor
	// Paths[i] produced the coefficients at index i of the path axis.
	Paths []Path

	batchDims int
}

// NumPaths returns the length of the path axis.
func (r *Result) NumPaths() int {
	return len(r.Paths)
}

// BatchShape returns the leading batch axes.
func (r *Result) BatchShape() tensor.Shape {
	return r.Stacked.Shape()[:r.batchDims].Clone()
}

// TrailingShape returns the per-path coefficient shape.
func (r *Result) TrailingShape() tensor.Shape {
	return r.Stacked.Shape()[r.batchDims+1:].Clone()
}

// Order returns the half-open index range [start, end) of order-k paths.
func (r *Result) Order(k int) (start, end int) {
	start = len(r.Paths)
	for i, p := range r.Paths {
		if p.Order() == k {
			if i < start {
				start = i
			}
			end = i + 1
		}
	}
	if end == 0 {
		return 0, 0
	}
	return start, end
}

// Coefficient returns a copy of the coefficients of path i, shaped
// [batch..., trailing...].
func (r *Result) Coefficient(i int) (*tensor.RawTensor, error) {
	if i < 0 || i >= len(r.Paths) {
		return nil, fmt.Errorf("coefficient %d out of range [0, %d)", i, len(r.Paths))
	}
	batch := r.BatchShape()
	trailing := r.TrailingShape()
	inner := trailing.NumElements()
	outer := batch.NumElements()

	out := tensor.MustNewRaw(batch.Concat(trailing...), tensor.Float64, r.Stacked.Device())
	src, dst := r.Stacked.AsFloat64(), out.AsFloat64()
	stride := len(r.Paths) * inner
	for b := range outer {
		copy(dst[b*inner:(b+1)*inner], src[b*stride+i*inner:b*stride+(i+1)*inner])
	}
	return out, nil
}

// Energy returns the sum of squared coefficients of path i over the whole batch.
func (r *Result) Energy(i int) float64 {
	c, err := r.Coefficient(i)
	if err != nil {
		return 0
	}
	v := c.AsFloat64()
	return floats.Dot(v, v)
}

// NewResult wraps a stacked coefficient tensor, such as one read back from
// disk. The path axis sits right after batchDims leading axes.
func NewResult(stacked *tensor.RawTensor, paths []Path, batchDims int) (*Result, error) {
	if stacked == nil || stacked.DType() != tensor.Float64 {
		return nil, fmt.Errorf("%w: coefficients must be a Float64 tensor", ErrType)
	}
	shape := stacked.Shape()
	if batchDims < 0 || batchDims >= len(shape) {
		return nil, fmt.Errorf("%w: %d batch axes for shape %v", ErrShape, batchDims, shape)
	}
	if shape[batchDims] != len(paths) {
		return nil, fmt.Errorf("%w: path axis has %d entries, %d paths given", ErrShape, shape[batchDims], len(paths))
	}
	return &Result{Stacked: stacked, Paths: paths, batchDims: batchDims}, nil
}
