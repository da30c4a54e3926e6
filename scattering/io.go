// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package scattering

import (
	"github.com/born-ml/scatter/internal/serialization"
	"github.com/born-ml/scatter/tensor"
)

// SaveResult writes res to path as a SafeTensors file.
func SaveResult(path string, res *Result, metadata map[string]string) error {
	return serialization.WriteResult(path, res, metadata)
}

// LoadResult reads a file written by SaveResult and verifies its checksum.
func LoadResult(path string) (*Result, error) {
	return serialization.ReadResult(path)
}

// SaveBank writes every filter of bank, at every resolution, to path.
func SaveBank(path string, bank *Bank, metadata map[string]string) error {
	return serialization.WriteBank(path, bank, metadata)
}

// SaveSignal writes a real signal to path.
func SaveSignal(path string, x *tensor.RawTensor) error {
	return serialization.WriteSignal(path, x)
}

// LoadSignal reads the named real tensor from path. An empty name selects the
// signal written by SaveSignal, or the only tensor of a single-tensor file.
func LoadSignal(path, name string) (*tensor.RawTensor, error) {
	return serialization.ReadSignal(path, name)
}
