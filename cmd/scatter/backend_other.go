//go:build !windows

package main

import (
	"fmt"

	"github.com/born-ml/scatter/backend/cpu"
	"github.com/born-ml/scatter/tensor"
)

// openBackend returns the named backend and its release function.
func openBackend(name string) (tensor.Backend, func(), error) {
	switch name {
	case "cpu":
		return cpu.New(), func() {}, nil
	case "webgpu":
		return nil, nil, fmt.Errorf("the webgpu backend is only built on windows")
	default:
		return nil, nil, fmt.Errorf("unknown backend %q, want cpu or webgpu", name)
	}
}
