package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones[float64](Shape{3, 5}, backend)
//	b := tensor.Ones[float64](Shape{1}, backend)
//	c := a.Add(b) // Shape: [3, 5] (b broadcast over every element)
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Sub(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// MulScalar multiplies every element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	result := t.backend.MulScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// Sum reduces the tensor to its total sum (a one-element tensor).
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	result := t.backend.Sum(t.raw)
	return New[T, B](result, t.backend)
}

// Pad2D zero-pads a 2-D tensor symmetrically by padH rows and padW columns.
func (t *Tensor[T, B]) Pad2D(padH, padW int) *Tensor[T, B] {
	result := t.backend.Pad2D(t.raw, padH, padW)
	return New[T, B](result, t.backend)
}

// Corr2D computes the valid-mode cross-correlation of this tensor with a
// kernel (stride 1, no padding).
//
// Example:
//
//	x := tensor.Ones[float64](Shape{6, 8}, backend)
//	k, _ := tensor.FromSlice([]float64{1, -1}, Shape{1, 2}, backend)
//	y := x.Corr2D(k) // Shape: [6, 7]
func (t *Tensor[T, B]) Corr2D(kernel *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Corr2D(t.raw, kernel.raw, 1, 1, 0, 0)
	return New[T, B](result, t.backend)
}

// Corr2DStrided computes cross-correlation with explicit per-axis stride and
// symmetric zero padding.
func (t *Tensor[T, B]) Corr2DStrided(kernel *Tensor[T, B], strideH, strideW, padH, padW int) *Tensor[T, B] {
	result := t.backend.Corr2D(t.raw, kernel.raw, strideH, strideW, padH, padW)
	return New[T, B](result, t.backend)
}
