package ops

import (
	"fmt"

	"github.com/corr-ml/corr/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: y[8,8] + bias[1] -> out[8,8]  (bias broadcast over every element)
//	Backward: grad[8,8] -> grad_bias[1]    (sum of all elements)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, _ tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		// Clone so gradient accumulation never aliases a forward tensor.
		return grad.Clone()
	}

	result, err := tensor.NewRaw(targetShape, grad.DType(), grad.Device())
	if err != nil {
		panic(fmt.Sprintf("reduceBroadcast: failed to create result: %v", err))
	}

	// Accumulate each output-gradient element into the input position it was
	// broadcast from.
	gradShape := grad.Shape()
	switch grad.DType() {
	case tensor.Float64:
		gradData := grad.AsFloat64()
		resultData := result.AsFloat64()
		for i := range gradData {
			resultData[broadcastSourceIndex(i, gradShape, targetShape)] += gradData[i]
		}
	case tensor.Float32:
		gradData := grad.AsFloat32()
		resultData := result.AsFloat32()
		for i := range gradData {
			resultData[broadcastSourceIndex(i, gradShape, targetShape)] += gradData[i]
		}
	default:
		panic(fmt.Sprintf("reduceBroadcast: unsupported dtype %s", grad.DType()))
	}

	return result
}

// broadcastSourceIndex maps a flat index in the broadcast (output) shape back
// to the flat index of the input element it originated from.
func broadcastSourceIndex(flatIdx int, outShape, inShape tensor.Shape) int {
	outStrides := outShape.ComputeStrides()
	inStrides := inShape.ComputeStrides()

	inIdx := 0
	offset := len(outShape) - len(inShape)

	temp := flatIdx
	for i := 0; i < len(outShape); i++ {
		coord := temp / outStrides[i]
		temp %= outStrides[i]

		if i < offset {
			continue
		}
		if inShape[i-offset] == 1 {
			continue
		}
		inIdx += coord * inStrides[i-offset]
	}

	return inIdx
}
