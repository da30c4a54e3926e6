package serialization

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/scatter/internal/tensor"
)

// TestSafeTensorsRoundTrip tests write -> read -> verify for every stored dtype.
func TestSafeTensorsRoundTrip(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "roundtrip.safetensors")

	f32, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat32 failed: %v", err)
	}
	f64, err := tensor.FromFloat64([]float64{0.5, -1.5, 2.25}, tensor.Shape{3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat64 failed: %v", err)
	}
	c128, err := tensor.FromComplex128([]complex128{1 + 2i, -3i, 4}, tensor.Shape{3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromComplex128 failed: %v", err)
	}

	err = WriteSafeTensors(testFile, map[string]*tensor.RawTensor{
		"a.f32":  f32,
		"b.f64":  f64,
		"c.c128": c128,
	}, map[string]string{"source": "test"})
	if err != nil {
		t.Fatalf("WriteSafeTensors failed: %v", err)
	}

	r, err := NewSafeTensorsReader(testFile)
	if err != nil {
		t.Fatalf("NewSafeTensorsReader failed: %v", err)
	}
	defer func() { _ = r.Close() }()

	if err := r.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got := r.Metadata()["source"]; got != "test" {
		t.Errorf("metadata source = %q, want %q", got, "test")
	}
	if got := r.TensorNames(); len(got) != 3 || got[0] != "a.f32" || got[2] != "c.c128" {
		t.Errorf("TensorNames = %v", got)
	}

	info, err := r.TensorInfo("c.c128")
	if err != nil {
		t.Fatalf("TensorInfo failed: %v", err)
	}
	if info.DType != "F64" || len(info.Shape) != 2 || info.Shape[1] != 2 {
		t.Errorf("complex stored as %s %v, want F64 [3 2]", info.DType, info.Shape)
	}

	gotF32, err := r.LoadTensor("a.f32")
	if err != nil {
		t.Fatalf("LoadTensor a.f32 failed: %v", err)
	}
	if !gotF32.Shape().Equal(tensor.Shape{2, 3}) || gotF32.AsFloat32()[5] != 6 {
		t.Errorf("a.f32 = %v %v", gotF32.Shape(), gotF32.AsFloat32())
	}

	gotF64, err := r.LoadTensor("b.f64")
	if err != nil {
		t.Fatalf("LoadTensor b.f64 failed: %v", err)
	}
	for i, want := range f64.AsFloat64() {
		if gotF64.AsFloat64()[i] != want {
			t.Errorf("b.f64[%d] = %v, want %v", i, gotF64.AsFloat64()[i], want)
		}
	}

	gotC, err := r.LoadTensor("c.c128")
	if err != nil {
		t.Fatalf("LoadTensor c.c128 failed: %v", err)
	}
	if gotC.DType() != tensor.Complex128 || !gotC.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("c.c128 loaded as %s %v", gotC.DType(), gotC.Shape())
	}
	for i, want := range c128.AsComplex128() {
		if gotC.AsComplex128()[i] != want {
			t.Errorf("c.c128[%d] = %v, want %v", i, gotC.AsComplex128()[i], want)
		}
	}

	if _, err := r.LoadTensor("missing"); !errors.Is(err, ErrTensorNotFound) {
		t.Errorf("LoadTensor(missing) error = %v, want ErrTensorNotFound", err)
	}
}

// TestSafeTensorsChecksumMismatch flips one data byte after writing.
func TestSafeTensorsChecksumMismatch(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "corrupt.safetensors")
	x, _ := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{4}, tensor.CPU)
	if err := WriteSignal(testFile, x); err != nil {
		t.Fatalf("WriteSignal failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(testFile, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadSignal(testFile, ""); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("ReadSignal error = %v, want ErrChecksumMismatch", err)
	}
}

// writeRawHeader writes a file with a hand-built header and data section.
func writeRawHeader(t *testing.T, header map[string]any, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.safetensors")
	h, err := json.Marshal(header)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 8, 8+len(h)+len(data))
	binary.LittleEndian.PutUint64(buf, uint64(len(h)))
	buf = append(buf, h...)
	buf = append(buf, data...)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestSafeTensorsMaliciousHeaders checks that malformed headers are rejected on open.
func TestSafeTensorsMaliciousHeaders(t *testing.T) {
	tests := []struct {
		name    string
		header  map[string]any
		data    []byte
		wantErr error
	}{
		{
			name: "out of bounds",
			header: map[string]any{
				"x": SafeTensorInfo{DType: "F64", Shape: []int{4}, DataOffsets: [2]int64{0, 32}},
			},
			data:    make([]byte, 16),
			wantErr: ErrOutOfBounds,
		},
		{
			name: "overlap",
			header: map[string]any{
				"x": SafeTensorInfo{DType: "F64", Shape: []int{2}, DataOffsets: [2]int64{0, 16}},
				"y": SafeTensorInfo{DType: "F64", Shape: []int{2}, DataOffsets: [2]int64{8, 24}},
			},
			data:    make([]byte, 24),
			wantErr: ErrOffsetOverlap,
		},
		{
			name: "negative",
			header: map[string]any{
				"x": SafeTensorInfo{DType: "F64", Shape: []int{1}, DataOffsets: [2]int64{8, 0}},
			},
			data:    make([]byte, 8),
			wantErr: ErrNegativeOffset,
		},
		{
			name: "path traversal",
			header: map[string]any{
				"../x": SafeTensorInfo{DType: "F64", Shape: []int{1}, DataOffsets: [2]int64{0, 8}},
			},
			data:    make([]byte, 8),
			wantErr: ErrInvalidTensorName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRawHeader(t, tt.header, tt.data)
			_, err := NewSafeTensorsReader(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}
}

// TestSafeTensorsUnsupportedDType rejects dtypes the scattering tools never produce.
func TestSafeTensorsUnsupportedDType(t *testing.T) {
	path := writeRawHeader(t, map[string]any{
		"x": SafeTensorInfo{DType: "BF16", Shape: []int{4}, DataOffsets: [2]int64{0, 8}},
	}, make([]byte, 8))

	r, err := NewSafeTensorsReader(path)
	if err != nil {
		t.Fatalf("NewSafeTensorsReader failed: %v", err)
	}
	defer func() { _ = r.Close() }()
	if _, err := r.LoadTensor("x"); !errors.Is(err, ErrUnsupportedDType) {
		t.Errorf("LoadTensor error = %v, want ErrUnsupportedDType", err)
	}
}

// TestSafeTensorsHeaderTooLarge rejects an absurd header size before allocating it.
func TestSafeTensorsHeaderTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.safetensors")
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, MaxHeaderSize+1)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSafeTensorsReader(path); !errors.Is(err, ErrHeaderTooLarge) {
		t.Errorf("error = %v, want ErrHeaderTooLarge", err)
	}
}

func TestValidateTensorName(t *testing.T) {
	valid := []string{"coefficients", "psi.j0.l3.m-1.r0", "phi.s2.r1"}
	for _, name := range valid {
		if err := ValidateTensorName(name); err != nil {
			t.Errorf("ValidateTensorName(%q) = %v", name, err)
		}
	}
	invalid := []string{"", "a/b", `a\b`, "a..b", "a\x00", "__metadata__"}
	for _, name := range invalid {
		if err := ValidateTensorName(name); !errors.Is(err, ErrInvalidTensorName) {
			t.Errorf("ValidateTensorName(%q) = %v, want ErrInvalidTensorName", name, err)
		}
	}
}
