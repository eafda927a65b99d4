// Package ops defines the recorded operations for reverse-mode automatic
// differentiation. Each operation stores the raw tensors of its forward pass
// and knows how to turn its output gradient into input gradients.
package ops

import "github.com/corr-ml/corr/internal/tensor"

// Operation is a single recorded step of the forward pass.
type Operation interface {
	// Inputs returns the input tensors of the forward pass, in order.
	// Backward must return one gradient (or nil) per input, in the same order.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor of the forward pass.
	Output() *tensor.RawTensor

	// Backward computes the input gradients given the output gradient,
	// delegating numeric work to the backend.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
