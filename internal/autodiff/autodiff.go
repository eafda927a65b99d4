// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation (CPU, mock, etc.) and adds
// gradient tracking capabilities through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op (Add, Corr2D, Sum, ...) implements its backward pass
//   - Reverse-mode AD: Computes gradients using the chain rule
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice(data, tensor.Shape{6, 8}, backend)
//	y := x.Corr2D(k)
//
//	grads, _ := autodiff.Backward(y) // gradient of sum(y)
//	fmt.Println(grads[x.Raw()])
package autodiff

import (
	"github.com/corr-ml/corr/internal/autodiff/ops"
	"github.com/corr-ml/corr/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a
// GradientTape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend (CPU, mock, etc.)
	tape  *GradientTape // Records operations for backpropagation
}

// Verify the decorator itself satisfies the Backend interface.
var _ tensor.Backend = (*AutodiffBackend[*tensor.MockBackend])(nil)

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
// Useful for:
//   - Starting/stopping recording
//   - Clearing the tape between iterations
//   - Inspecting recorded operations
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(a, c, result))
	}

	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSubOp(a, c, result))
	}

	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulOp(a, c, result))
	}

	return result
}

// MulScalar multiplies by a scalar and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.MulScalar(x, scalar)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulScalarOp(x, result, scalar))
	}

	return result
}

// Sum performs a total-sum reduction and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSumOp(x, result))
	}

	return result
}

// Pad2D zero-pads a 2-D tensor and records the operation.
//
// Pad2D must be recorded on the tape: without the crop in its backward pass,
// gradients computed for the padded tensor would never reach the original.
func (b *AutodiffBackend[B]) Pad2D(x *tensor.RawTensor, padH, padW int) *tensor.RawTensor {
	result := b.inner.Pad2D(x, padH, padW)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewPad2DOp(x, result, padH, padW))
	}

	return result
}

// Corr2D performs 2-D cross-correlation and records the operation.
func (b *AutodiffBackend[B]) Corr2D(input, kernel *tensor.RawTensor, strideH, strideW, padH, padW int) *tensor.RawTensor {
	result := b.inner.Corr2D(input, kernel, strideH, strideW, padH, padW)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewCorr2DOp(input, kernel, result, strideH, strideW, padH, padW))
	}

	return result
}

// Corr2DInputBackward delegates to the wrapped backend.
// Gradient computation itself is never recorded on the tape.
func (b *AutodiffBackend[B]) Corr2DInputBackward(input, kernel, grad *tensor.RawTensor, strideH, strideW, padH, padW int) *tensor.RawTensor {
	return b.inner.Corr2DInputBackward(input, kernel, grad, strideH, strideW, padH, padW)
}

// Corr2DKernelBackward delegates to the wrapped backend.
func (b *AutodiffBackend[B]) Corr2DKernelBackward(input, kernel, grad *tensor.RawTensor, strideH, strideW, padH, padW int) *tensor.RawTensor {
	return b.inner.Corr2DKernelBackward(input, kernel, grad, strideH, strideW, padH, padW)
}
