// Copyright 2026 The Corr Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the cross-correlation building blocks: the valid-mode
// Corr2D function and the configurable Conv2D layer.
package nn

import (
	"github.com/corr-ml/corr/internal/nn"
	"github.com/corr-ml/corr/internal/tensor"
)

// Parameter represents a trainable parameter of a layer.
type Parameter[T tensor.DType, B tensor.Backend] = nn.Parameter[T, B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[T tensor.DType, B tensor.Backend](name string, t *tensor.Tensor[T, B]) *Parameter[T, B] {
	return nn.NewParameter(name, t)
}

// Corr2D computes valid-mode 2-D cross-correlation of x with kernel
// (stride 1, no padding, no bias).
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice(img, tensor.Shape{6, 8}, backend)
//	k, _ := tensor.FromSlice([]float64{1, -1}, tensor.Shape{1, 2}, backend)
//	y, err := nn.Corr2D(x, k) // [6, 7]
func Corr2D[T tensor.DType, B tensor.Backend](x, kernel *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return nn.Corr2D(x, kernel)
}

// Conv2D is a single-channel 2-D convolutional layer with per-axis padding
// and stride and an optional scalar bias.
type Conv2D[T tensor.DType, B tensor.Backend] = nn.Conv2D[T, B]

// NewConv2D creates a new 2-D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D[float64](3, 3, 1, 1, 1, 1, true, backend) // kernel=3x3, stride=(1,1), padding=(1,1), bias
func NewConv2D[T tensor.DType, B tensor.Backend](
	kernelH, kernelW int,
	strideH, strideW int,
	padH, padW int,
	useBias bool,
	backend B,
) *Conv2D[T, B] {
	return nn.NewConv2D[T](kernelH, kernelW, strideH, strideW, padH, padW, useBias, backend)
}

// Initialization helpers

// Xavier returns a tensor with Xavier (Glorot) uniform initialization.
func Xavier[T tensor.DType, B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	return nn.Xavier[T](fanIn, fanOut, shape, backend)
}

// Zeros creates a zero-filled tensor.
func Zeros[T tensor.DType, B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	return nn.Zeros[T](shape, backend)
}

// Ones creates a one-filled tensor.
func Ones[T tensor.DType, B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	return nn.Ones[T](shape, backend)
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn[T tensor.DType, B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[T, B] {
	return nn.Randn[T](shape, backend)
}
