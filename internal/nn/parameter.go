package nn

import (
	"github.com/corr-ml/corr/internal/tensor"
)

// Parameter represents a trainable parameter of a layer.
//
// Parameters are tensors that take part in gradient computation. They
// typically represent weights and biases.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//
//	w := weight.Tensor()
//	grad := weight.Grad() // after a backward pass
type Parameter[T tensor.DType, B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[T, B]
}

// NewParameter creates a new trainable parameter wrapping an initialized
// tensor. The gradient lives on the tensor itself and is populated by the
// backward pass.
func NewParameter[T tensor.DType, B tensor.Backend](name string, t *tensor.Tensor[T, B]) *Parameter[T, B] {
	t.RequireGrad()

	return &Parameter[T, B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[T, B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[T, B]) Tensor() *tensor.Tensor[T, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before the first backward pass.
func (p *Parameter[T, B]) Grad() *tensor.Tensor[T, B] {
	return p.tensor.Grad()
}

// SetGrad sets the gradient tensor.
func (p *Parameter[T, B]) SetGrad(grad *tensor.Tensor[T, B]) {
	p.tensor.SetGrad(grad)
}

// ZeroGrad clears the gradient.
//
// Call before each iteration to avoid accumulating stale gradients.
func (p *Parameter[T, B]) ZeroGrad() {
	p.tensor.SetGrad(nil)
}
