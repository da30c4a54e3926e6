// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"math/cmplx"
	"testing"

	"github.com/born-ml/scatter/backend/cpu"
	"github.com/born-ml/scatter/tensor"
)

func TestNewWithWorkers_MatchesDefault(t *testing.T) {
	data := make([]float64, 4*16*16)
	for i := range data {
		data[i] = float64((i*7)%13) - 6
	}
	x, err := tensor.FromFloat64(data, tensor.Shape{4, 16, 16}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat64 failed: %v", err)
	}

	want := cpu.New().FFT(x, 2).AsComplex128()
	for _, workers := range []int{0, 1, 3} {
		backend := cpu.NewWithWorkers(workers)
		if backend.Device() != tensor.CPU {
			t.Errorf("workers=%d: Device() = %v, want CPU", workers, backend.Device())
		}
		got := backend.FFT(x, 2).AsComplex128()
		for i := range want {
			if cmplx.Abs(want[i]-got[i]) > 1e-12 {
				t.Fatalf("workers=%d: element %d = %v, want %v", workers, i, got[i], want[i])
			}
		}
	}
}
