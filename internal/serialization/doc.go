// Package serialization stores scattering coefficients, filter banks and
// input signals in the SafeTensors format.
//
// SafeTensors layout:
//
//	[8 bytes: header size (uint64 LE)]
//	[header size bytes: JSON header]
//	[tensor data: raw little-endian bytes]
//
// The header maps tensor names to dtype, shape and data offsets; the
// optional "__metadata__" entry holds string key/values. Complex tensors
// have no SafeTensors dtype: they are written as F64 with a trailing axis
// of length 2 (real, imaginary) and listed in the "complex" metadata key.
//
// Example usage:
//
//	res, _ := s.Scatter(x)
//	if err := serialization.WriteResult("coeffs.safetensors", res, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	x, err := serialization.ReadSignal("signal.safetensors", "")
package serialization
