package nn

import (
	"math"
	"math/rand"

	"github.com/corr-ml/corr/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Values are drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This keeps activation variance roughly constant across layers.
func Xavier[T tensor.DType, B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[T](shape, backend)

	data := t.Data()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = T((rand.Float64()*2.0 - 1.0) * bound)
	}

	return t
}

// Zeros creates a tensor filled with zeros. Commonly used for biases.
func Zeros[T tensor.DType, B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	return tensor.Zeros[T](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T tensor.DType, B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	return tensor.Ones[T](shape, backend)
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn[T tensor.DType, B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	return tensor.Randn[T](shape, backend)
}
