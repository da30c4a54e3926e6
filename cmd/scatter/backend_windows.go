//go:build windows

package main

import (
	"fmt"

	"github.com/born-ml/scatter/backend/cpu"
	"github.com/born-ml/scatter/backend/webgpu"
	"github.com/born-ml/scatter/tensor"
)

// openBackend returns the named backend and its release function.
func openBackend(name string) (tensor.Backend, func(), error) {
	switch name {
	case "cpu":
		return cpu.New(), func() {}, nil
	case "webgpu":
		if !webgpu.IsAvailable() {
			return nil, nil, fmt.Errorf("WebGPU not available on this system")
		}
		gpu, err := webgpu.New()
		if err != nil {
			return nil, nil, err
		}
		return gpu, gpu.Release, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q, want cpu or webgpu", name)
	}
}
