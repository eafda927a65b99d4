package cpu

import (
	"fmt"

	"github.com/corr-ml/corr/internal/tensor"
)

// Corr2DInputBackward computes the gradient w.r.t. the input.
//
// Algorithm: scatter. Every output position (i, j) read the input window
// whose top-left corner is (i*strideH - padH, j*strideW - padW), so its
// incoming gradient is distributed back over that window, weighted by the
// kernel. Positions that fell in the zero padding receive nothing.
//
// References:
//   - "A guide to convolution arithmetic for deep learning" (Dumoulin & Visin, 2016)
func (cpu *CPUBackend) Corr2DInputBackward(input, kernel, grad *tensor.RawTensor, strideH, strideW, padH, padW int) *tensor.RawTensor {
	h := input.Shape()[0]
	w := input.Shape()[1]
	kh := kernel.Shape()[0]
	kw := kernel.Shape()[1]
	outH := grad.Shape()[0]
	outW := grad.Shape()[1]

	inputGrad, err := tensor.NewRaw(tensor.Shape{h, w}, grad.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("corr2d input backward: failed to create gradient tensor: %v", err))
	}

	switch grad.DType() {
	case tensor.Float64:
		corr2dInputBackwardFloat64(inputGrad, grad, kernel, h, w, kh, kw, outH, outW, strideH, strideW, padH, padW)
	case tensor.Float32:
		corr2dInputBackwardFloat32(inputGrad, grad, kernel, h, w, kh, kw, outH, outW, strideH, strideW, padH, padW)
	default:
		panic(fmt.Sprintf("corr2d input backward: unsupported dtype %s", grad.DType()))
	}

	return inputGrad
}

func corr2dInputBackwardFloat64(
	inputGrad, grad, kernel *tensor.RawTensor,
	h, w, kh, kw, outH, outW, strideH, strideW, padH, padW int,
) {
	inputGradData := inputGrad.AsFloat64()
	gradData := grad.AsFloat64()
	kernelData := kernel.AsFloat64()

	for i := 0; i < outH; i++ {
		for j := 0; j < outW; j++ {
			g := gradData[i*outW+j]

			for a := 0; a < kh; a++ {
				row := i*strideH - padH + a
				if row < 0 || row >= h {
					continue
				}
				for b := 0; b < kw; b++ {
					col := j*strideW - padW + b
					if col < 0 || col >= w {
						continue
					}
					inputGradData[row*w+col] += g * kernelData[a*kw+b]
				}
			}
		}
	}
}

//nolint:dupl // Intentional duplication for float32/float64
func corr2dInputBackwardFloat32(
	inputGrad, grad, kernel *tensor.RawTensor,
	h, w, kh, kw, outH, outW, strideH, strideW, padH, padW int,
) {
	inputGradData := inputGrad.AsFloat32()
	gradData := grad.AsFloat32()
	kernelData := kernel.AsFloat32()

	for i := 0; i < outH; i++ {
		for j := 0; j < outW; j++ {
			g := gradData[i*outW+j]

			for a := 0; a < kh; a++ {
				row := i*strideH - padH + a
				if row < 0 || row >= h {
					continue
				}
				for b := 0; b < kw; b++ {
					col := j*strideW - padW + b
					if col < 0 || col >= w {
						continue
					}
					inputGradData[row*w+col] += g * kernelData[a*kw+b]
				}
			}
		}
	}
}

// Corr2DKernelBackward computes the gradient w.r.t. the kernel.
//
// Algorithm: gather. Each kernel weight (a, b) multiplied input position
// (i*strideH - padH + a, j*strideW - padW + b) for every output position
// (i, j), so its gradient is the sum of input*grad over all output positions
// where that input position was in bounds.
func (cpu *CPUBackend) Corr2DKernelBackward(input, kernel, grad *tensor.RawTensor, strideH, strideW, padH, padW int) *tensor.RawTensor {
	h := input.Shape()[0]
	w := input.Shape()[1]
	kh := kernel.Shape()[0]
	kw := kernel.Shape()[1]
	outH := grad.Shape()[0]
	outW := grad.Shape()[1]

	kernelGrad, err := tensor.NewRaw(tensor.Shape{kh, kw}, grad.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("corr2d kernel backward: failed to create gradient tensor: %v", err))
	}

	switch grad.DType() {
	case tensor.Float64:
		corr2dKernelBackwardFloat64(kernelGrad, grad, input, h, w, kh, kw, outH, outW, strideH, strideW, padH, padW)
	case tensor.Float32:
		corr2dKernelBackwardFloat32(kernelGrad, grad, input, h, w, kh, kw, outH, outW, strideH, strideW, padH, padW)
	default:
		panic(fmt.Sprintf("corr2d kernel backward: unsupported dtype %s", grad.DType()))
	}

	return kernelGrad
}

func corr2dKernelBackwardFloat64(
	kernelGrad, grad, input *tensor.RawTensor,
	h, w, kh, kw, outH, outW, strideH, strideW, padH, padW int,
) {
	kernelGradData := kernelGrad.AsFloat64()
	gradData := grad.AsFloat64()
	inputData := input.AsFloat64()

	for a := 0; a < kh; a++ {
		for b := 0; b < kw; b++ {
			sum := 0.0

			for i := 0; i < outH; i++ {
				row := i*strideH - padH + a
				if row < 0 || row >= h {
					continue
				}
				for j := 0; j < outW; j++ {
					col := j*strideW - padW + b
					if col < 0 || col >= w {
						continue
					}
					sum += inputData[row*w+col] * gradData[i*outW+j]
				}
			}

			kernelGradData[a*kw+b] = sum
		}
	}
}

//nolint:dupl // Intentional duplication for float32/float64
func corr2dKernelBackwardFloat32(
	kernelGrad, grad, input *tensor.RawTensor,
	h, w, kh, kw, outH, outW, strideH, strideW, padH, padW int,
) {
	kernelGradData := kernelGrad.AsFloat32()
	gradData := grad.AsFloat32()
	inputData := input.AsFloat32()

	for a := 0; a < kh; a++ {
		for b := 0; b < kw; b++ {
			sum := float32(0.0)

			for i := 0; i < outH; i++ {
				row := i*strideH - padH + a
				if row < 0 || row >= h {
					continue
				}
				for j := 0; j < outW; j++ {
					col := j*strideW - padW + b
					if col < 0 || col >= w {
						continue
					}
					sum += inputData[row*w+col] * gradData[i*outW+j]
				}
			}

			kernelGradData[a*kw+b] = sum
		}
	}
}
