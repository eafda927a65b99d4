// Package nn provides the 2-D cross-correlation building blocks: the valid-mode
// Corr2D function and the configurable Conv2D layer with padding, stride and
// bias.
package nn

import (
	"fmt"

	"github.com/corr-ml/corr/internal/tensor"
)

// Corr2D computes valid-mode 2-D cross-correlation of x with kernel.
//
// The kernel slides over x with stride 1 and no padding; at each position the
// element-wise product of the window and the kernel is summed:
//
//	Y[i,j] = Σ_a Σ_b X[i+a, j+b] * K[a, b]
//
// Output shape is (H-kh+1, W-kw+1). Unlike mathematical convolution the
// kernel is not flipped, matching the convention used by neural network
// libraries.
//
// Returns an error if either tensor is not 2-D or the kernel exceeds the
// input along some axis.
func Corr2D[T tensor.DType, B tensor.Backend](x, kernel *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	if len(x.Shape()) != 2 {
		return nil, fmt.Errorf("corr2d: input must be 2-D, got shape %v", x.Shape())
	}
	if len(kernel.Shape()) != 2 {
		return nil, fmt.Errorf("corr2d: kernel must be 2-D, got shape %v", kernel.Shape())
	}
	if kernel.Shape()[0] > x.Shape()[0] || kernel.Shape()[1] > x.Shape()[1] {
		return nil, fmt.Errorf("corr2d: kernel %v larger than input %v", kernel.Shape(), x.Shape())
	}

	raw := x.Backend().Corr2D(x.Raw(), kernel.Raw(), 1, 1, 0, 0)

	return tensor.New[T](raw, x.Backend()), nil
}
