package cpu

import (
	"fmt"

	"github.com/corr-ml/corr/internal/parallel"
	"github.com/corr-ml/corr/internal/tensor"
)

// Corr2D computes 2-D cross-correlation with per-axis stride and symmetric
// zero padding.
//
// Input shape: [H, W]
// Kernel shape: [kh, kw]
// Output shape: [(H + 2*padH - kh)/strideH + 1, (W + 2*padW - kw)/strideW + 1]
//
// Algorithm: for every output position (i, j), multiply the kernel against
// the window of the (conceptually padded) input whose top-left corner is
// (i*strideH - padH, j*strideW - padW) and sum the products. Padding is
// implicit: out-of-range positions contribute zero. This is the direct
// sliding-window formulation, kept deliberately free of im2col or FFT
// tricks so the loops read exactly like the definition.
//
// Output rows are computed concurrently; each output element is written by
// exactly one goroutine.
func (cpu *CPUBackend) Corr2D(input, kernel *tensor.RawTensor, strideH, strideW, padH, padW int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 2 {
		panic(fmt.Sprintf("corr2d: input must be 2D [H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 2 {
		panic(fmt.Sprintf("corr2d: kernel must be 2D [kh,kw], got %dD", len(kernelShape)))
	}
	if strideH < 1 || strideW < 1 {
		panic(fmt.Sprintf("corr2d: stride must be >= 1, got (%d, %d)", strideH, strideW))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("corr2d: padding must be >= 0, got (%d, %d)", padH, padW))
	}

	h := inputShape[0]
	w := inputShape[1]
	kh := kernelShape[0]
	kw := kernelShape[1]

	if kh > h+2*padH || kw > w+2*padW {
		panic(fmt.Sprintf("corr2d: kernel [%d %d] larger than padded input [%d %d]",
			kh, kw, h+2*padH, w+2*padW))
	}

	// out = (size + 2*pad - kernel) / stride + 1, numerator non-negative here
	outH := (h+2*padH-kh)/strideH + 1
	outW := (w+2*padW-kw)/strideW + 1

	if outH <= 0 || outW <= 0 {
		panic(fmt.Sprintf("corr2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", outH, outW))
	}

	output, err := tensor.NewRaw(tensor.Shape{outH, outW}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("corr2d: failed to create output tensor: %v", err))
	}

	switch input.DType() {
	case tensor.Float64:
		corr2dFloat64(output, input, kernel, h, w, kh, kw, outH, outW, strideH, strideW, padH, padW, cpu.par)
	case tensor.Float32:
		corr2dFloat32(output, input, kernel, h, w, kh, kw, outH, outW, strideH, strideW, padH, padW, cpu.par)
	default:
		panic(fmt.Sprintf("corr2d: unsupported dtype %s", input.DType()))
	}

	return output
}

// corr2dFloat64 performs Corr2D for float64 with the direct sliding window.
func corr2dFloat64(
	output, input, kernel *tensor.RawTensor,
	h, w, kh, kw, outH, outW, strideH, strideW, padH, padW int,
	par parallel.Config,
) {
	inputData := input.AsFloat64()
	kernelData := kernel.AsFloat64()
	outputData := output.AsFloat64()

	parallel.For(outH, func(i int) {
		for j := 0; j < outW; j++ {
			// Window top-left in (unpadded) input coordinates
			rowStart := i*strideH - padH
			colStart := j*strideW - padW

			sum := 0.0
			for a := 0; a < kh; a++ {
				row := rowStart + a
				if row < 0 || row >= h {
					continue // zero padding
				}
				for b := 0; b < kw; b++ {
					col := colStart + b
					if col < 0 || col >= w {
						continue // zero padding
					}
					sum += kernelData[a*kw+b] * inputData[row*w+col]
				}
			}
			outputData[i*outW+j] = sum
		}
	}, par)
}

// corr2dFloat32 performs Corr2D for float32 with the direct sliding window.
//
//nolint:dupl // Intentional duplication for float32/float64
func corr2dFloat32(
	output, input, kernel *tensor.RawTensor,
	h, w, kh, kw, outH, outW, strideH, strideW, padH, padW int,
	par parallel.Config,
) {
	inputData := input.AsFloat32()
	kernelData := kernel.AsFloat32()
	outputData := output.AsFloat32()

	parallel.For(outH, func(i int) {
		for j := 0; j < outW; j++ {
			rowStart := i*strideH - padH
			colStart := j*strideW - padW

			sum := float32(0.0)
			for a := 0; a < kh; a++ {
				row := rowStart + a
				if row < 0 || row >= h {
					continue
				}
				for b := 0; b < kw; b++ {
					col := colStart + b
					if col < 0 || col >= w {
						continue
					}
					sum += kernelData[a*kw+b] * inputData[row*w+col]
				}
			}
			outputData[i*outW+j] = sum
		}
	}, par)
}

// Pad2D zero-pads a 2-D tensor by padH rows on the top and bottom and padW
// columns on the left and right.
func (cpu *CPUBackend) Pad2D(x *tensor.RawTensor, padH, padW int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("pad2d: expected 2D tensor, got %dD", len(shape)))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("pad2d: padding must be >= 0, got (%d, %d)", padH, padW))
	}

	h := shape[0]
	w := shape[1]
	outH := h + 2*padH
	outW := w + 2*padW

	result, err := tensor.NewRaw(tensor.Shape{outH, outW}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("pad2d: failed to create result tensor: %v", err))
	}

	// Interior copy; the border stays zero from allocation.
	switch x.DType() {
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i := 0; i < h; i++ {
			copy(dst[(i+padH)*outW+padW:(i+padH)*outW+padW+w], src[i*w:(i+1)*w])
		}
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i := 0; i < h; i++ {
			copy(dst[(i+padH)*outW+padW:(i+padH)*outW+padW+w], src[i*w:(i+1)*w])
		}
	default:
		panic(fmt.Sprintf("pad2d: unsupported dtype %s", x.DType()))
	}

	return result
}
