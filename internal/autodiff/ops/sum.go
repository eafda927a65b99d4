package ops

import (
	"fmt"

	"github.com/corr-ml/corr/internal/tensor"
)

// SumOp represents a total-sum reduction: output = Σ x (a one-element tensor).
//
// Backward pass: every input element contributed with weight 1, so the input
// gradient is the scalar output gradient broadcast to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		input:  x,
		output: output,
	}
}

// Backward computes the input gradient for the sum reduction.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	inputGrad, err := tensor.NewRaw(op.input.Shape(), outputGrad.DType(), outputGrad.Device())
	if err != nil {
		panic(fmt.Sprintf("sum backward: failed to create gradient tensor: %v", err))
	}

	switch outputGrad.DType() {
	case tensor.Float64:
		g := outputGrad.AsFloat64()[0]
		data := inputGrad.AsFloat64()
		for i := range data {
			data[i] = g
		}
	case tensor.Float32:
		g := outputGrad.AsFloat32()[0]
		data := inputGrad.AsFloat32()
		for i := range data {
			data[i] = g
		}
	default:
		panic(fmt.Sprintf("sum backward: unsupported dtype %s", outputGrad.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scalar output tensor.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}
