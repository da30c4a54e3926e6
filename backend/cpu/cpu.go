// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/scatter/internal/backend/cpu"
	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements every capability.
var (
	_ tensor.Backend       = (*Backend)(nil)
	_ tensor.LocalAverager = (*Backend)(nil)
	_ tensor.Integrator    = (*Backend)(nil)
)

// New creates a new CPU backend using all available cores.
//
// Example:
//
//	backend := cpu.New()
//	xhat := backend.FFT(x, 2)
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend limited to the given number of
// goroutines. Values below 1 select all available cores.
func NewWithWorkers(workers int) *Backend {
	cfg := parallel.DefaultConfig()
	if workers > 0 {
		cfg.NumWorkers = workers
		cfg.Enabled = workers > 1
	}
	return internalcpu.NewWithConfig(cfg)
}
