package serialization

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/born-ml/scatter/internal/backend/cpu"
	"github.com/born-ml/scatter/internal/filters"
	"github.com/born-ml/scatter/internal/scattering"
	"github.com/born-ml/scatter/internal/tensor"
)

func TestResultRoundTrip(t *testing.T) {
	cfg := scattering.DefaultConfig(1)
	cfg.Shape = []int{32}
	cfg.J = 2
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := scattering.New(cpu.New(), cfg)
	if err != nil {
		t.Fatalf("scattering.New failed: %v", err)
	}

	data := make([]float64, 2*32)
	for i := range data {
		data[i] = float64(i%7) - 3
	}
	x, _ := tensor.FromFloat64(data, tensor.Shape{2, 32}, tensor.CPU)
	res, err := s.Scatter(x)
	if err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "coeffs.safetensors")
	if err := WriteResult(path, res, map[string]string{"method": string(cfg.Method)}); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}
	got, err := ReadResult(path)
	if err != nil {
		t.Fatalf("ReadResult failed: %v", err)
	}

	if !got.Stacked.Shape().Equal(res.Stacked.Shape()) {
		t.Fatalf("shape = %v, want %v", got.Stacked.Shape(), res.Stacked.Shape())
	}
	if got.NumPaths() != res.NumPaths() {
		t.Fatalf("paths = %d, want %d", got.NumPaths(), res.NumPaths())
	}
	for i := range res.Paths {
		if got.Paths[i].String() != res.Paths[i].String() {
			t.Errorf("path %d = %s, want %s", i, got.Paths[i], res.Paths[i])
		}
	}
	want := res.Stacked.AsFloat64()
	for i, v := range got.Stacked.AsFloat64() {
		if v != want[i] {
			t.Fatalf("coefficient %d = %v, want %v", i, v, want[i])
		}
	}
	if !got.BatchShape().Equal(tensor.Shape{2}) {
		t.Errorf("batch shape = %v", got.BatchShape())
	}
}

func TestWriteBank(t *testing.T) {
	g := filters.Geometry{Dim: 3, Shape: []int{8, 8, 8}, J: 1, L: 1, MaxOrder: 1}
	bank, err := filters.Build(g, filters.Params{Sigma0: 1, RotationCovariant: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tensors := BankTensors(bank)
	if len(tensors) != bank.NumFilters() {
		t.Fatalf("BankTensors = %d tensors, want %d", len(tensors), bank.NumFilters())
	}
	for _, name := range []string{"psi.j0.l0.m0.r0", "psi.j0.l1.m-1.r0", "psi.j0.l1.m1.r0", "phi.s0.r0", "phi.s1.r0"} {
		if _, ok := tensors[name]; !ok {
			t.Errorf("missing %s", name)
		}
	}

	path := filepath.Join(t.TempDir(), "bank.safetensors")
	if err := WriteBank(path, bank, nil); err != nil {
		t.Fatalf("WriteBank failed: %v", err)
	}
	r, err := NewSafeTensorsReader(path)
	if err != nil {
		t.Fatalf("NewSafeTensorsReader failed: %v", err)
	}
	defer func() { _ = r.Close() }()

	if r.Metadata()[geometryKey] == "" {
		t.Error("geometry metadata missing")
	}
	psi, err := r.LoadTensor("psi.j0.l1.m1.r0")
	if err != nil {
		t.Fatalf("LoadTensor failed: %v", err)
	}
	if psi.DType() != tensor.Complex128 {
		t.Errorf("solid harmonic loaded as %s, want complex128", psi.DType())
	}
	wantPsi := bank.Wavelet(0, 1).Level(0)[2].AsComplex128()
	for i, v := range psi.AsComplex128() {
		if v != wantPsi[i] {
			t.Fatalf("psi[%d] = %v, want %v", i, v, wantPsi[i])
		}
	}
}

func TestReadSignal(t *testing.T) {
	dir := t.TempDir()
	x, _ := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)

	path := filepath.Join(dir, "signal.safetensors")
	if err := WriteSignal(path, x); err != nil {
		t.Fatalf("WriteSignal failed: %v", err)
	}
	got, err := ReadSignal(path, "")
	if err != nil {
		t.Fatalf("ReadSignal failed: %v", err)
	}
	if got.DType() != tensor.Float32 || got.AsFloat32()[3] != 4 {
		t.Errorf("ReadSignal = %s %v", got.DType(), got.AsFloat32())
	}

	// A lone tensor is picked whatever its name.
	other := filepath.Join(dir, "other.safetensors")
	if err := WriteSafeTensors(other, map[string]*tensor.RawTensor{"volume": x}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSignal(other, ""); err != nil {
		t.Errorf("ReadSignal(single tensor) failed: %v", err)
	}

	c, _ := tensor.FromComplex128([]complex128{1, 2}, tensor.Shape{2}, tensor.CPU)
	complexPath := filepath.Join(dir, "complex.safetensors")
	if err := WriteSafeTensors(complexPath, map[string]*tensor.RawTensor{SignalName: c}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSignal(complexPath, ""); !errors.Is(err, scattering.ErrType) {
		t.Errorf("ReadSignal(complex) error = %v, want ErrType", err)
	}
}
