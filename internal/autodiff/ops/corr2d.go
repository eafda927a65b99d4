package ops

import (
	"github.com/corr-ml/corr/internal/tensor"
)

// Corr2DOp records a 2-D cross-correlation for autodiff.
//
// Forward: output = Corr2D(input, kernel, stride, pad)
//
// Backward (gradients):
//   - d_input:  output gradient scattered back over each input window,
//     weighted by the kernel ("transposed" correlation)
//   - d_kernel: correlation of the input with the output gradient
//
// References:
//   - "A guide to convolution arithmetic for deep learning" (Dumoulin & Visin, 2016)
type Corr2DOp struct {
	input   *tensor.RawTensor
	kernel  *tensor.RawTensor
	output  *tensor.RawTensor
	strideH int
	strideW int
	padH    int
	padW    int
}

// NewCorr2DOp creates a new Corr2D operation.
func NewCorr2DOp(input, kernel, output *tensor.RawTensor, strideH, strideW, padH, padW int) *Corr2DOp {
	return &Corr2DOp{
		input:   input,
		kernel:  kernel,
		output:  output,
		strideH: strideH,
		strideW: strideW,
		padH:    padH,
		padW:    padW,
	}
}

// Inputs returns the input tensors [input, kernel].
func (op *Corr2DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input, op.kernel}
}

// Output returns the output tensor.
func (op *Corr2DOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes gradients for Corr2D.
//
// This is pure orchestration - the numeric loops live in the backend.
func (op *Corr2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inputGrad := backend.Corr2DInputBackward(op.input, op.kernel, outputGrad, op.strideH, op.strideW, op.padH, op.padW)
	kernelGrad := backend.Corr2DKernelBackward(op.input, op.kernel, outputGrad, op.strideH, op.strideW, op.padH, op.padW)

	return []*tensor.RawTensor{inputGrad, kernelGrad}
}
