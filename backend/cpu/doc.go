// Copyright 2026 The Corr Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Naive sliding-window cross-correlation loops
//   - Float64 and Float32 support
//   - NumPy-compatible broadcasting
//
// The loops are deliberately unoptimized: each output element is the direct
// O(kernel_area) window sum, so the code stays readable and serves as the
// reference semantics for the rest of the library.
//
// # Basic Usage
//
//	import (
//	    "github.com/corr-ml/corr/backend/cpu"
//	    "github.com/corr-ml/corr/nn"
//	    "github.com/corr-ml/corr/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float64](tensor.Shape{6, 8}, backend)
//	    k := tensor.Ones[float64](tensor.Shape{1, 2}, backend)
//	    y, _ := nn.Corr2D(x, k)
//	    _ = y
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its
// own result tensor and does not share mutable state.
package cpu
