// Copyright 2026 The Corr Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/corr-ml/corr/autodiff"
//	    "github.com/corr-ml/corr/backend/cpu"
//	    "github.com/corr-ml/corr/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    x, _ := tensor.FromSlice(data, tensor.Shape{6, 8}, backend)
//	    y := x.Corr2D(k).Sum() // Operations recorded on tape
//
//	    grads, _ := autodiff.Backward(y)
//	    _ = grads[x.Raw()] // d sum(y) / d x
//	}
package autodiff

import (
	"github.com/corr-ml/corr/internal/autodiff"
	"github.com/corr-ml/corr/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// Backward computes gradients of out (treated as a scalar loss) with respect
// to everything on the tape, and attaches gradients to the given params.
func Backward[T tensor.DType, B tensor.Backend](
	out *tensor.Tensor[T, *Backend[B]],
	params ...*tensor.Tensor[T, *Backend[B]],
) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	return autodiff.Backward(out, params...)
}
