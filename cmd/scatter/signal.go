package main

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/scatter/tensor"
)

// synthesize builds a test signal of the given spatial shape.
//
//	impulse  unit sample at the center
//	noise    standard normal white noise
//	sine     plane wave along the first axis with a period of 8 samples
func synthesize(kind string, shape []int, seed uint64) (*tensor.RawTensor, error) {
	n := tensor.Shape(shape).NumElements()
	data := make([]float64, n)

	switch kind {
	case "impulse":
		center := 0
		stride := 1
		for i := len(shape) - 1; i >= 0; i-- {
			center += shape[i] / 2 * stride
			stride *= shape[i]
		}
		data[center] = 1
	case "noise":
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for i := range data {
			data[i] = rng.NormFloat64()
		}
	case "sine":
		inner := n / shape[0]
		for i := range data {
			data[i] = math.Sin(2 * math.Pi * float64(i/inner) / 8)
		}
	default:
		return nil, fmt.Errorf("unknown signal %q, want impulse, noise or sine", kind)
	}
	return tensor.FromFloat64(data, shape, tensor.CPU)
}
