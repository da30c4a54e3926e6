package scattering

import (
	"github.com/born-ml/scatter/internal/filters"
	"github.com/born-ml/scatter/internal/tensor"
)

// cascade runs the breadth-first scattering tree over one padded batch and
// returns one coefficient per path, in table order.
func (s *Scattering) cascade(x *tensor.RawTensor) []*tensor.RawTensor {
	coeffs := make([]*tensor.RawTensor, len(s.table.paths))

	root := &signal{space: x}
	coeffs[0] = s.avg.average(root)

	for i := s.table.orderStart[1]; i < s.table.orderStart[2]; i++ {
		step := s.table.paths[i][0]
		first := s.branch(root, s.bank.Wavelet(step.J, step.L))
		coeffs[i] = s.avg.average(first)

		for _, c := range s.table.children[i] {
			next := s.table.paths[c][1]
			second := s.branch(first, s.bank.Wavelet(next.J, next.L))
			coeffs[c] = s.avg.average(second)
			second.release()
		}
		first.release()
	}

	return coeffs
}

// release drops the node buffers once every descendant has been averaged.
func (s *signal) release() {
	s.space.Release()
	if s.hat != nil {
		s.hat.Release()
	}
}

// branch applies one wavelet family to a node: filter in frequency, invert,
// subsample to the family's scale and take the modulus. Families with
// several harmonic orders are combined into one rotation-invariant modulus.
func (s *Scattering) branch(parent *signal, psi *filters.Psi) *signal {
	be, ndim := s.backend, s.bank.Geometry.Dim
	hat := parent.spectrum(be, ndim)

	res, k := parent.res, 1
	if s.bank.Geometry.Subsampled() {
		res = psi.J
		k = 1 << (psi.J - parent.res)
	}

	var u *tensor.RawTensor
	for _, filter := range psi.Level(parent.res) {
		y := be.IFFT(be.ComplexMul(hat, filter), ndim)
		if k > 1 {
			y = be.Subsample(y, k, ndim)
		}
		u = be.ModulusRotation(y, u)
	}
	return &signal{space: u, res: res, scale: psi.J + 1}
}
