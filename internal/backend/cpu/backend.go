// Package cpu implements the naive CPU backend for the corr framework.
//
// Every operation is a direct loop over the output elements. The point of
// this backend is to be obviously correct and easy to read, not fast: the
// sliding-window kernels in corr2d.go are the reference semantics the rest
// of the framework is validated against.
package cpu

import (
	"fmt"

	"github.com/corr-ml/corr/internal/parallel"
	"github.com/corr-ml/corr/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements tensor operations on CPU with naive loops.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with an explicit parallelism config.
// Use parallel.Sequential() for deterministic single-goroutine execution.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.elementWise("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.elementWise("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.elementWise("mul", a, b, func(x, y float64) float64 { return x * y })
}

// elementWise applies a binary op over broadcast inputs into a fresh tensor.
func (cpu *CPUBackend) elementWise(name string, a, b *tensor.RawTensor, op func(float64, float64) float64) *tensor.RawTensor {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float64:
		elementWiseFloat64(result, a, b, outShape, op)
	case tensor.Float32:
		elementWiseFloat32(result, a, b, outShape, op)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

func elementWiseFloat64(result, a, b *tensor.RawTensor, outShape tensor.Shape, op func(float64, float64) float64) {
	aData := a.AsFloat64()
	bData := b.AsFloat64()
	resultData := result.AsFloat64()

	// Fast path: no broadcasting needed
	if a.Shape().Equal(b.Shape()) {
		for i := range resultData {
			resultData[i] = op(aData[i], bData[i])
		}
		return
	}

	for i := range resultData {
		resultData[i] = op(
			aData[broadcastIndex(i, outShape, a.Shape())],
			bData[broadcastIndex(i, outShape, b.Shape())],
		)
	}
}

func elementWiseFloat32(result, a, b *tensor.RawTensor, outShape tensor.Shape, op func(float64, float64) float64) {
	aData := a.AsFloat32()
	bData := b.AsFloat32()
	resultData := result.AsFloat32()

	if a.Shape().Equal(b.Shape()) {
		for i := range resultData {
			resultData[i] = float32(op(float64(aData[i]), float64(bData[i])))
		}
		return
	}

	for i := range resultData {
		av := aData[broadcastIndex(i, outShape, a.Shape())]
		bv := bData[broadcastIndex(i, outShape, b.Shape())]
		resultData[i] = float32(op(float64(av), float64(bv)))
	}
}

// broadcastIndex maps a flat index in the output shape to the corresponding
// flat index in an input shape, treating size-1 input dimensions as repeated.
func broadcastIndex(flatIdx int, outShape, inShape tensor.Shape) int {
	outStrides := outShape.ComputeStrides()
	inStrides := inShape.ComputeStrides()

	inIdx := 0
	offset := len(outShape) - len(inShape)

	temp := flatIdx
	for i := 0; i < len(outShape); i++ {
		coord := temp / outStrides[i]
		temp %= outStrides[i]

		if i < offset {
			continue // dimension absent from input
		}
		if inShape[i-offset] == 1 {
			continue // broadcast dimension, index 0
		}
		inIdx += coord * inStrides[i-offset]
	}

	return inIdx
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulscalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float64:
		s := toFloat64(scalar)
		xData := x.AsFloat64()
		resultData := result.AsFloat64()
		for i, v := range xData {
			resultData[i] = v * s
		}
	case tensor.Float32:
		s := float32(toFloat64(scalar))
		xData := x.AsFloat32()
		resultData := result.AsFloat32()
		for i, v := range xData {
			resultData[i] = v * s
		}
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// Sum reduces a tensor to its total sum, returned as a one-element tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum
	case tensor.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		result.AsFloat32()[0] = sum
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

// toFloat64 converts a scalar of any supported type to float64.
func toFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float64:
		return s
	case float32:
		return float64(s)
	case int:
		return float64(s)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}
