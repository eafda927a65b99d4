// Copyright 2026 The Corr Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/corr-ml/corr/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go naive loops
//   - tensor.MockBackend: Independent reference implementation used by the
//     equivalence tests
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
//
// Example:
//
//	import (
//	    "github.com/corr-ml/corr/backend/cpu"
//	    "github.com/corr-ml/corr/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{6, 8}, backend)
//	y := tensor.Ones[float64](tensor.Shape{6, 8}, backend)
//	z := x.Add(y) // Uses backend.Add under the hood
type Backend interface {
	// Element-wise binary operations (with broadcasting).
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.

	// Scalar operations.
	MulScalar(x *RawTensor, scalar any) *RawTensor // Multiply by scalar.

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor // Total sum (one-element result).

	// Cross-correlation operations: symmetric zero padding, strided 2-D
	// cross-correlation, and its two backward kernels.
	Pad2D(x *RawTensor, padH, padW int) *RawTensor
	Corr2D(input, kernel *RawTensor, strideH, strideW, padH, padW int) *RawTensor
	Corr2DInputBackward(input, kernel, grad *RawTensor, strideH, strideW, padH, padW int) *RawTensor
	Corr2DKernelBackward(input, kernel, grad *RawTensor, strideH, strideW, padH, padW int) *RawTensor

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "Mock").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
