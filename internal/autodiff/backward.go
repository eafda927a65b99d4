package autodiff

import (
	"fmt"

	"github.com/corr-ml/corr/internal/tensor"
)

// Backward runs reverse-mode differentiation from out, which is treated as a
// scalar loss: the seed gradient is a ones tensor of out's shape.
//
// It walks the backend's tape, accumulates gradients, and attaches the result
// to every tensor passed in params (via SetGrad). The full gradient map is
// returned so callers can also look up gradients for intermediate tensors.
func Backward[T tensor.DType, B tensor.Backend](
	out *tensor.Tensor[T, *AutodiffBackend[B]],
	params ...*tensor.Tensor[T, *AutodiffBackend[B]],
) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	backend := out.Backend()

	seed, err := onesLike(out.Raw())
	if err != nil {
		return nil, fmt.Errorf("backward: %w", err)
	}

	grads := backend.Tape().Backward(out.Raw(), seed, backend)

	for _, p := range params {
		if g, ok := grads[p.Raw()]; ok {
			p.SetGrad(tensor.New[T](g, backend))
		}
	}

	return grads, nil
}

// onesLike creates a ones tensor with the same shape, dtype and device as x.
func onesLike(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	raw, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	switch x.DType() {
	case tensor.Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	default:
		return nil, fmt.Errorf("onesLike: unsupported dtype %s", x.DType())
	}

	return raw, nil
}
