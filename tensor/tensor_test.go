// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/scatter/internal/backend/cpu"
	"github.com/born-ml/scatter/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements the public interfaces.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.CPUBackend)(nil)
	var _ tensor.LocalAverager = (*cpu.CPUBackend)(nil)
	var _ tensor.Integrator = (*cpu.CPUBackend)(nil)
}

// TestRawTensorAPI verifies RawTensor type alias exposes expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Complex128, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Complex128 {
		t.Errorf("DType() = %v, want Complex128", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if raw.ByteSize() != 6*16 {
		t.Errorf("ByteSize() = %d, want %d", raw.ByteSize(), 6*16)
	}

	clone := raw.Clone()
	if clone.IsUnique() || raw.IsUnique() {
		t.Error("Clone() should share the buffer")
	}
}

func TestFromFloat64(t *testing.T) {
	x, err := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat64 failed: %v", err)
	}
	got := tensor.Complex128Values(x)
	want := []complex128{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Complex128Values()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := tensor.FromFloat64([]float64{1, 2, 3}, tensor.Shape{2, 2}, tensor.CPU); err == nil {
		t.Error("expected error for mismatched data length")
	}
}

func TestFromFloat32Widening(t *testing.T) {
	x, err := tensor.FromFloat32([]float32{0.5, -1}, tensor.Shape{2}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat32 failed: %v", err)
	}
	got := tensor.Float64Values(x)
	if got[0] != 0.5 || got[1] != -1 {
		t.Errorf("Float64Values() = %v, want [0.5 -1]", got)
	}
}

func TestPadModeNames(t *testing.T) {
	if tensor.PadZero.String() != "zero" || tensor.PadReflect.String() != "reflect" {
		t.Errorf("unexpected pad mode names %q %q", tensor.PadZero, tensor.PadReflect)
	}
}
