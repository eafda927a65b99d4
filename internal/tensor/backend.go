package tensor

// Backend defines the capability interface that all compute backends must
// implement. It is deliberately small: elementwise arithmetic, a total-sum
// reduction, and the 2-D sliding-window operations (forward plus the two
// backward kernels the autodiff decorator delegates to).
//
// Implementations:
//   - cpu.CPUBackend: the naive reference loops
//   - autodiff.AutodiffBackend: decorator adding gradient recording
//   - MockBackend: independent float64 implementation for equivalence tests
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor // total sum (scalar result)

	// Sliding-window operations over rank-2 tensors.
	//
	// Pad2D zero-pads symmetrically by padH rows on top and bottom and padW
	// columns on left and right.
	//
	// Corr2D computes the cross-correlation of input [H, W] with kernel
	// [kh, kw] using per-axis stride and symmetric zero padding. Output shape
	// is [(H+2*padH-kh)/strideH + 1, (W+2*padW-kw)/strideW + 1].
	Pad2D(x *RawTensor, padH, padW int) *RawTensor
	Corr2D(input, kernel *RawTensor, strideH, strideW, padH, padW int) *RawTensor

	// Backward kernels for Corr2D, used by the autodiff decorator.
	Corr2DInputBackward(input, kernel, grad *RawTensor, strideH, strideW, padH, padW int) *RawTensor
	Corr2DKernelBackward(input, kernel, grad *RawTensor, strideH, strideW, padH, padW int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
