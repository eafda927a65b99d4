package nn

import (
	"fmt"

	"github.com/corr-ml/corr/internal/tensor"
)

// Conv2D is a single-channel 2-D convolutional layer built on cross-correlation.
//
// Forward: output = Corr2D(pad(input), weight) + bias
//
// Input shape:  [H, W]
// Weight shape: [kernel_h, kernel_w]
// Bias shape:   [1] (a scalar added to every output element), or absent
// Output shape: [out_h, out_w]
//
// Where:
//
//	out_h = (H + 2*pad_h - kernel_h) / stride_h + 1
//	out_w = (W + 2*pad_w - kernel_w) / stride_w + 1
//
// Padding and stride are configured per axis. A 3x3 kernel with padding (1,1)
// and stride (1,1) preserves the input shape.
//
// Example:
//
//	conv := nn.NewConv2D[float64](3, 3, 1, 1, 1, 1, true, backend)
//
//	input := tensor.Randn[float64](tensor.Shape{8, 8}, backend)
//	output := conv.Forward(input) // [8, 8]
type Conv2D[T tensor.DType, B tensor.Backend] struct {
	kernelSize [2]int
	stride     [2]int
	padding    [2]int
	useBias    bool

	weight *Parameter[T, B] // [kernel_h, kernel_w]
	bias   *Parameter[T, B] // [1] or nil

	backend B
}

// NewConv2D creates a new 2-D convolutional layer.
//
// Parameters:
//   - kernelH, kernelW: Kernel dimensions
//   - strideH, strideW: Window step per axis (>= 1)
//   - padH, padW: Symmetric zero padding per axis (>= 0)
//   - useBias: Whether to include the scalar bias term
//   - backend: Backend for computation
//
// Weights are Xavier-initialized and the bias starts as a single random
// scalar. Both are plain mutable parameters: callers may overwrite them with
// known values, as the equivalence tests do.
func NewConv2D[T tensor.DType, B tensor.Backend](
	kernelH, kernelW int,
	strideH, strideW int,
	padH, padW int,
	useBias bool,
	backend B,
) *Conv2D[T, B] {
	if kernelH <= 0 || kernelW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid kernel size h=%d, w=%d", kernelH, kernelW))
	}
	if strideH <= 0 || strideW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid stride h=%d, w=%d", strideH, strideW))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("conv2d: invalid padding h=%d, w=%d", padH, padW))
	}

	fan := kernelH * kernelW
	weight := Xavier[T](fan, fan, tensor.Shape{kernelH, kernelW}, backend)
	weightParam := NewParameter("conv2d.weight", weight)

	var biasParam *Parameter[T, B]
	if useBias {
		biasParam = NewParameter("conv2d.bias", Randn[T](tensor.Shape{1}, backend))
	}

	return &Conv2D[T, B]{
		kernelSize: [2]int{kernelH, kernelW},
		stride:     [2]int{strideH, strideW},
		padding:    [2]int{padH, padW},
		useBias:    useBias,
		weight:     weightParam,
		bias:       biasParam,
		backend:    backend,
	}
}

// Forward performs the forward pass.
//
// Input: [H, W]. Output: [out_h, out_w] per the shape formula above.
// Panics if the input is not 2-D or the configuration yields an empty output.
func (c *Conv2D[T, B]) Forward(input *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	if len(input.Shape()) != 2 {
		panic(fmt.Sprintf("conv2d: expected 2-D input [H,W], got %d-D", len(input.Shape())))
	}

	outputRaw := c.backend.Corr2D(
		input.Raw(),
		c.weight.Tensor().Raw(),
		c.stride[0], c.stride[1],
		c.padding[0], c.padding[1],
	)

	output := tensor.New[T](outputRaw, c.backend)

	if c.useBias {
		// Bias has shape [1] and broadcasts over the whole output. Going
		// through Add keeps the bias gradient flowing on the tape.
		output = output.Add(c.bias.Tensor())
	}

	return output
}

// Parameters returns all trainable parameters.
func (c *Conv2D[T, B]) Parameters() []*Parameter[T, B] {
	if c.useBias {
		return []*Parameter[T, B]{c.weight, c.bias}
	}
	return []*Parameter[T, B]{c.weight}
}

// Weight returns the weight parameter.
func (c *Conv2D[T, B]) Weight() *Parameter[T, B] {
	return c.weight
}

// Bias returns the bias parameter, or nil when the layer has no bias.
func (c *Conv2D[T, B]) Bias() *Parameter[T, B] {
	return c.bias
}

// SetWeight replaces the kernel values. The given tensor must match the
// configured kernel shape.
func (c *Conv2D[T, B]) SetWeight(w *tensor.Tensor[T, B]) {
	if !w.Shape().Equal(tensor.Shape{c.kernelSize[0], c.kernelSize[1]}) {
		panic(fmt.Sprintf("conv2d: weight shape %v does not match kernel size %v", w.Shape(), c.kernelSize))
	}
	c.weight = NewParameter("conv2d.weight", w)
}

// SetBias replaces the bias value. Panics if the layer was built without bias.
func (c *Conv2D[T, B]) SetBias(b *tensor.Tensor[T, B]) {
	if !c.useBias {
		panic("conv2d: layer has no bias")
	}
	if !b.Shape().Equal(tensor.Shape{1}) {
		panic(fmt.Sprintf("conv2d: bias shape %v, want [1]", b.Shape()))
	}
	c.bias = NewParameter("conv2d.bias", b)
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D[T, B]) KernelSize() [2]int {
	return c.kernelSize
}

// Stride returns the per-axis stride [height, width].
func (c *Conv2D[T, B]) Stride() [2]int {
	return c.stride
}

// Padding returns the per-axis padding [height, width].
func (c *Conv2D[T, B]) Padding() [2]int {
	return c.padding
}

// String returns a string representation of the layer.
func (c *Conv2D[T, B]) String() string {
	return fmt.Sprintf("Conv2D(kernel_size=(%d, %d), stride=(%d, %d), padding=(%d, %d), bias=%v)",
		c.kernelSize[0], c.kernelSize[1],
		c.stride[0], c.stride[1],
		c.padding[0], c.padding[1], c.useBias)
}

// ComputeOutputSize computes output spatial dimensions for a given input size.
//
// Returns: [out_height, out_width].
func (c *Conv2D[T, B]) ComputeOutputSize(inputH, inputW int) [2]int {
	outH := (inputH+2*c.padding[0]-c.kernelSize[0])/c.stride[0] + 1
	outW := (inputW+2*c.padding[1]-c.kernelSize[1])/c.stride[1] + 1
	return [2]int{outH, outW}
}
