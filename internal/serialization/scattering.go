package serialization

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/born-ml/scatter/internal/filters"
	"github.com/born-ml/scatter/internal/scattering"
	"github.com/born-ml/scatter/internal/tensor"
)

// Well-known tensor names and metadata keys.
const (
	CoefficientsName = "coefficients"
	SignalName       = "signal"

	pathsKey     = "paths"
	batchDimsKey = "batch_dims"
	geometryKey  = "geometry"
)

// WriteResult stores the stacked coefficients of a Scatter call together
// with the path table.
func WriteResult(path string, res *scattering.Result, metadata map[string]string) error {
	paths, err := json.Marshal(res.Paths)
	if err != nil {
		return fmt.Errorf("failed to marshal paths: %w", err)
	}
	meta := map[string]string{
		pathsKey:     string(paths),
		batchDimsKey: strconv.Itoa(len(res.BatchShape())),
	}
	for k, v := range metadata {
		meta[k] = v
	}
	return WriteSafeTensors(path, map[string]*tensor.RawTensor{CoefficientsName: res.Stacked}, meta)
}

// ReadResult loads a file written by WriteResult and verifies its checksum.
func ReadResult(path string) (*scattering.Result, error) {
	r, err := NewSafeTensorsReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	if err := r.Verify(); err != nil {
		return nil, err
	}
	var paths []scattering.Path
	if err := json.Unmarshal([]byte(r.Metadata()[pathsKey]), &paths); err != nil {
		return nil, fmt.Errorf("failed to parse path table: %w", err)
	}
	batchDims, err := strconv.Atoi(r.Metadata()[batchDimsKey])
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", batchDimsKey, err)
	}
	stacked, err := r.LoadTensor(CoefficientsName)
	if err != nil {
		return nil, err
	}
	return scattering.NewResult(stacked, paths, batchDims)
}

// bankGeometry is the geometry record stored with a filter bank.
type bankGeometry struct {
	Dim               int     `json:"dim"`
	Shape             []int   `json:"shape"`
	J                 int     `json:"J"`
	L                 int     `json:"L"`
	MaxOrder          int     `json:"max_order"`
	Sigma0            float64 `json:"sigma0"`
	RotationCovariant bool    `json:"rotation_covariant"`
	Padded            []int   `json:"padded"`
}

// PsiName names the band-pass filter (j, l), harmonic order m, at resolution r.
func PsiName(j, l, m, r int) string {
	return fmt.Sprintf("psi.j%d.l%d.m%d.r%d", j, l, m, r)
}

// PhiName names the Gaussian at scale s, at resolution r.
func PhiName(s, r int) string {
	return fmt.Sprintf("phi.s%d.r%d", s, r)
}

// BankTensors flattens a bank into named tensors.
func BankTensors(bank *filters.Bank) map[string]*tensor.RawTensor {
	out := make(map[string]*tensor.RawTensor, bank.NumFilters())
	for _, psi := range bank.Psi {
		for r, level := range psi.Levels {
			for i, f := range level {
				m := 0
				if psi.Ms != nil {
					m = psi.Ms[i]
				}
				out[PsiName(psi.J, psi.L, m, r)] = f
			}
		}
	}
	for s, levels := range bank.Phi {
		for r, f := range levels {
			out[PhiName(s, r)] = f
		}
	}
	return out
}

// WriteBank dumps every filter of a bank with its geometry.
func WriteBank(path string, bank *filters.Bank, metadata map[string]string) error {
	g := bank.Geometry
	geom, err := json.Marshal(bankGeometry{
		Dim:               g.Dim,
		Shape:             g.Shape,
		J:                 g.J,
		L:                 g.L,
		MaxOrder:          g.MaxOrder,
		Sigma0:            bank.Params.Sigma0,
		RotationCovariant: bank.Params.RotationCovariant,
		Padded:            bank.Layout.Padded,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal geometry: %w", err)
	}
	meta := map[string]string{geometryKey: string(geom)}
	for k, v := range metadata {
		meta[k] = v
	}
	return WriteSafeTensors(path, BankTensors(bank), meta)
}

// WriteSignal stores one signal tensor under SignalName.
func WriteSignal(path string, x *tensor.RawTensor) error {
	return WriteSafeTensors(path, map[string]*tensor.RawTensor{SignalName: x}, nil)
}

// ReadSignal loads a real signal. An empty name selects SignalName, or the
// only tensor of a single-tensor file.
func ReadSignal(path, name string) (*tensor.RawTensor, error) {
	r, err := NewSafeTensorsReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	if err := r.Verify(); err != nil {
		return nil, err
	}
	if name == "" {
		name = SignalName
		if names := r.TensorNames(); len(names) == 1 {
			name = names[0]
		}
	}
	x, err := r.LoadTensor(name)
	if err != nil {
		return nil, err
	}
	if x.DType().IsComplex() {
		return nil, fmt.Errorf("%w: signal %s is complex", scattering.ErrType, name)
	}
	return x, nil
}
