// Copyright 2026 The Corr Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the corr library.
//
// # Overview
//
// Tensors are the fundamental data structure in corr. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for element-wise operations
//   - Zero-copy typed views of the underlying buffer
//   - Device abstraction (CPU today)
//
// # Basic Usage
//
//	import (
//	    "github.com/corr-ml/corr/backend/cpu"
//	    "github.com/corr-ml/corr/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float64](tensor.Shape{6, 8}, backend)
//	    k := tensor.Ones[float64](tensor.Shape{1, 2}, backend)
//
//	    y := x.Corr2D(k) // valid-mode cross-correlation
//	    _ = y
//	}
//
// # Supported Data Types
//
// The DType constraint admits float32 and float64. Cross-correlation results
// are validated at 1e-6 tolerance, so float64 is the default choice.
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float64](tensor.Shape{3, 4}, backend) // (3, 4)
//	b := tensor.Ones[float64](tensor.Shape{1}, backend)     // (1)
//	c := a.Add(b)                                           // (3, 4)
//
// This is how a scalar bias with shape (1) is added to a whole output map.
package tensor
