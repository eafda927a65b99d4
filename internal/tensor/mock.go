package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively in float64, independently of the CPU
// backend's loops, so the two can be checked against each other.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// MulScalar multiplies every element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)

	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	data := m.toFloat64Slice(x)
	resultData := make([]float64, len(data))
	for i, v := range data {
		resultData[i] = v * s
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// Sum reduces a tensor to its total sum (shape [1]).
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	result, err := NewRaw(Shape{1}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	sum := 0.0
	for _, v := range m.toFloat64Slice(x) {
		sum += v
	}

	m.fromFloat64Slice([]float64{sum}, result)
	return result
}

// elementWise performs element-wise operations with broadcasting.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	numElements := outShape.NumElements()

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, numElements)

	for i := 0; i < numElements; i++ {
		aIdx := m.broadcastIndex(i, outShape, a.Shape())
		bIdx := m.broadcastIndex(i, outShape, b.Shape())

		resultData[i] = op(aData[aIdx], bData[bIdx])
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// Pad2D zero-pads a 2-D tensor symmetrically.
func (m *MockBackend) Pad2D(x *RawTensor, padH, padW int) *RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Pad2D: expected 2D tensor, got %dD", len(shape)))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("Pad2D: negative padding (%d, %d)", padH, padW))
	}

	h, w := shape[0], shape[1]
	outH, outW := h+2*padH, w+2*padW

	result, err := NewRaw(Shape{outH, outW}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	xData := m.toFloat64Slice(x)
	resultData := make([]float64, outH*outW)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			resultData[(i+padH)*outW+(j+padW)] = xData[i*w+j]
		}
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// Corr2D computes strided, padded 2-D cross-correlation (naive implementation
// for testing). It pads explicitly and then valid-correlates, the second of
// the two equivalent formulations, so the CPU backend's implicit-padding
// loops are validated against a genuinely different code path.
func (m *MockBackend) Corr2D(input, kernel *RawTensor, strideH, strideW, padH, padW int) *RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 2 || len(kernelShape) != 2 {
		panic("Corr2D requires 2D tensors [H, W]")
	}
	if strideH < 1 || strideW < 1 {
		panic(fmt.Sprintf("Corr2D: invalid stride (%d, %d)", strideH, strideW))
	}

	padded := input
	if padH > 0 || padW > 0 {
		padded = m.Pad2D(input, padH, padW)
	}

	h, w := padded.Shape()[0], padded.Shape()[1]
	kh, kw := kernelShape[0], kernelShape[1]

	if kh > h || kw > w {
		panic(fmt.Sprintf("Corr2D: kernel %v larger than padded input [%d %d]", kernelShape, h, w))
	}

	outH := (h-kh)/strideH + 1
	outW := (w-kw)/strideW + 1

	output, err := NewRaw(Shape{outH, outW}, input.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	paddedData := m.toFloat64Slice(padded)
	kernelData := m.toFloat64Slice(kernel)
	outputData := make([]float64, outH*outW)

	for i := 0; i < outH; i++ {
		for j := 0; j < outW; j++ {
			sum := 0.0
			for a := 0; a < kh; a++ {
				for b := 0; b < kw; b++ {
					sum += paddedData[(i*strideH+a)*w+(j*strideW+b)] * kernelData[a*kw+b]
				}
			}
			outputData[i*outW+j] = sum
		}
	}

	m.fromFloat64Slice(outputData, output)
	return output
}

// Corr2DInputBackward computes the gradient w.r.t. the input (naive implementation).
func (m *MockBackend) Corr2DInputBackward(input, kernel, grad *RawTensor, strideH, strideW, padH, padW int) *RawTensor {
	h, w := input.Shape()[0], input.Shape()[1]
	kh, kw := kernel.Shape()[0], kernel.Shape()[1]
	outH, outW := grad.Shape()[0], grad.Shape()[1]

	inputGrad, err := NewRaw(Shape{h, w}, grad.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	gradData := m.toFloat64Slice(grad)
	kernelData := m.toFloat64Slice(kernel)
	inputGradData := make([]float64, h*w)

	for i := 0; i < outH; i++ {
		for j := 0; j < outW; j++ {
			g := gradData[i*outW+j]
			for a := 0; a < kh; a++ {
				for b := 0; b < kw; b++ {
					row := i*strideH - padH + a
					col := j*strideW - padW + b
					if row >= 0 && row < h && col >= 0 && col < w {
						inputGradData[row*w+col] += g * kernelData[a*kw+b]
					}
				}
			}
		}
	}

	m.fromFloat64Slice(inputGradData, inputGrad)
	return inputGrad
}

// Corr2DKernelBackward computes the gradient w.r.t. the kernel (naive implementation).
func (m *MockBackend) Corr2DKernelBackward(input, kernel, grad *RawTensor, strideH, strideW, padH, padW int) *RawTensor {
	h, w := input.Shape()[0], input.Shape()[1]
	kh, kw := kernel.Shape()[0], kernel.Shape()[1]
	outH, outW := grad.Shape()[0], grad.Shape()[1]

	kernelGrad, err := NewRaw(Shape{kh, kw}, grad.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	inputData := m.toFloat64Slice(input)
	gradData := m.toFloat64Slice(grad)
	kernelGradData := make([]float64, kh*kw)

	for a := 0; a < kh; a++ {
		for b := 0; b < kw; b++ {
			sum := 0.0
			for i := 0; i < outH; i++ {
				for j := 0; j < outW; j++ {
					row := i*strideH - padH + a
					col := j*strideW - padW + b
					if row >= 0 && row < h && col >= 0 && col < w {
						sum += inputData[row*w+col] * gradData[i*outW+j]
					}
				}
			}
			kernelGradData[a*kw+b] = sum
		}
	}

	m.fromFloat64Slice(kernelGradData, kernelGrad)
	return kernelGrad
}

// toFloat64Slice converts tensor data to a float64 slice for generic processing.
// Always returns a fresh slice: callers may read it freely but must write
// results back through fromFloat64Slice.
func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	switch t.DType() {
	case Float64:
		src := t.AsFloat64()
		dst := make([]float64, len(src))
		copy(dst, src)
		return dst
	case Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", t.DType()))
	}
}

// fromFloat64Slice writes float64 results back into a tensor.
func (m *MockBackend) fromFloat64Slice(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float64:
		copy(t.AsFloat64(), src)
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	}
}

// broadcastIndex maps a flat index in the output shape to the corresponding
// flat index in an input shape, accounting for broadcasting.
func (m *MockBackend) broadcastIndex(flatIdx int, outShape, inShape Shape) int {
	outStrides := outShape.ComputeStrides()
	indices := make([]int, len(outShape))

	temp := flatIdx
	for i := 0; i < len(outShape); i++ {
		indices[i] = temp / outStrides[i]
		temp %= outStrides[i]
	}

	inStrides := inShape.ComputeStrides()
	inIdx := 0

	offset := len(outShape) - len(inShape)
	for i := 0; i < len(inShape); i++ {
		outDimIdx := indices[offset+i]

		// If input dimension is 1, always use index 0 (broadcasting)
		if inShape[i] == 1 {
			outDimIdx = 0
		}

		inIdx += outDimIdx * inStrides[i]
	}

	return inIdx
}

// scalarToFloat64 converts a scalar of any supported type to float64.
func scalarToFloat64(scalar any) float64 {
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
