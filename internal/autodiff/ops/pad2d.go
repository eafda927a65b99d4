package ops

import (
	"fmt"

	"github.com/corr-ml/corr/internal/tensor"
)

// Pad2DOp represents symmetric zero padding of a 2-D tensor.
//
// Backward pass: the padding border received no contribution from the input,
// so the input gradient is the center crop of the output gradient.
type Pad2DOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	padH   int
	padW   int
}

// NewPad2DOp creates a new Pad2DOp.
func NewPad2DOp(x, output *tensor.RawTensor, padH, padW int) *Pad2DOp {
	return &Pad2DOp{
		input:  x,
		output: output,
		padH:   padH,
		padW:   padW,
	}
}

// Backward crops the output gradient back to the input shape.
func (op *Pad2DOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	h := op.input.Shape()[0]
	w := op.input.Shape()[1]
	paddedW := outputGrad.Shape()[1]

	inputGrad, err := tensor.NewRaw(tensor.Shape{h, w}, outputGrad.DType(), outputGrad.Device())
	if err != nil {
		panic(fmt.Sprintf("pad2d backward: failed to create gradient tensor: %v", err))
	}

	switch outputGrad.DType() {
	case tensor.Float64:
		src := outputGrad.AsFloat64()
		dst := inputGrad.AsFloat64()
		for i := 0; i < h; i++ {
			offset := (i+op.padH)*paddedW + op.padW
			copy(dst[i*w:(i+1)*w], src[offset:offset+w])
		}
	case tensor.Float32:
		src := outputGrad.AsFloat32()
		dst := inputGrad.AsFloat32()
		for i := 0; i < h; i++ {
			offset := (i+op.padH)*paddedW + op.padW
			copy(dst[i*w:(i+1)*w], src[offset:offset+w])
		}
	default:
		panic(fmt.Sprintf("pad2d backward: unsupported dtype %s", outputGrad.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor [x].
func (op *Pad2DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the padded output tensor.
func (op *Pad2DOp) Output() *tensor.RawTensor {
	return op.output
}
