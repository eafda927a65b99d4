// Copyright 2026 The Corr Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/corr-ml/corr/internal/backend/cpu"
	"github.com/corr-ml/corr/internal/parallel"
	"github.com/corr-ml/corr/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go naive-loop implementations of all tensor
// operations, parallelized over output rows where it pays off.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Config controls worker-pool parallelism for the backend's loops.
type Config = parallel.Config

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/corr-ml/corr/backend/cpu"
//	    "github.com/corr-ml/corr/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float64](tensor.Shape{6, 8}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallelism config.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// Sequential returns a config that disables parallelism entirely.
func Sequential() Config {
	return parallel.Sequential()
}
