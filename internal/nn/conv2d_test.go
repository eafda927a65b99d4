package nn

import (
	"testing"

	"github.com/corr-ml/corr/internal/autodiff"
	"github.com/corr-ml/corr/internal/backend/cpu"
	"github.com/corr-ml/corr/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConv2D_Creation(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D[float64](3, 5, 1, 2, 1, 0, true, backend)

	assert.Equal(t, [2]int{3, 5}, conv.KernelSize())
	assert.Equal(t, [2]int{1, 2}, conv.Stride())
	assert.Equal(t, [2]int{1, 0}, conv.Padding())

	require.NotNil(t, conv.Weight())
	assert.True(t, conv.Weight().Tensor().Shape().Equal(tensor.Shape{3, 5}))

	require.NotNil(t, conv.Bias())
	assert.True(t, conv.Bias().Tensor().Shape().Equal(tensor.Shape{1}))

	assert.Len(t, conv.Parameters(), 2)
}

func TestConv2D_NoBias(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D[float64](2, 2, 1, 1, 0, 0, false, backend)

	assert.Nil(t, conv.Bias())
	assert.Len(t, conv.Parameters(), 1)
}

func TestConv2D_InvalidConfigPanics(t *testing.T) {
	backend := cpu.New()

	assert.Panics(t, func() { NewConv2D[float64](0, 3, 1, 1, 0, 0, false, backend) }, "zero kernel")
	assert.Panics(t, func() { NewConv2D[float64](3, 3, 0, 1, 0, 0, false, backend) }, "zero stride")
	assert.Panics(t, func() { NewConv2D[float64](3, 3, 1, 1, -1, 0, false, backend) }, "negative padding")
}

// TestConv2D_ShapePreserving: odd kernel with matching padding at stride 1
// keeps an 8x8 input at 8x8.
func TestConv2D_ShapePreserving(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D[float64](3, 3, 1, 1, 1, 1, true, backend)
	input := tensor.Randn[float64](tensor.Shape{8, 8}, backend)

	output := conv.Forward(input)

	assert.True(t, output.Shape().Equal(tensor.Shape{8, 8}))
	assert.Equal(t, [2]int{8, 8}, conv.ComputeOutputSize(8, 8))
}

// TestConv2D_StridedShape: floor((5-2)/3)+1 by floor((5-2)/2)+1 on a 5x5 input.
func TestConv2D_StridedShape(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D[float64](2, 2, 3, 2, 0, 0, false, backend)
	input := tensor.Randn[float64](tensor.Shape{5, 5}, backend)

	output := conv.Forward(input)

	assert.True(t, output.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, [2]int{2, 2}, conv.ComputeOutputSize(5, 5))
}

// TestConv2D_BiasAdded: with injected weights and bias, the output is the
// plain correlation shifted by the bias value.
func TestConv2D_BiasAdded(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{3, 3}, backend)
	require.NoError(t, err)
	k, err := tensor.FromSlice([]float64{0, 1, 2, 3}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	bias, err := tensor.FromSlice([]float64{0.5}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	conv := NewConv2D[float64](2, 2, 1, 1, 0, 0, true, backend)
	conv.SetWeight(k)
	conv.SetBias(bias)

	output := conv.Forward(x)

	assert.Equal(t, []float64{19.5, 25.5, 37.5, 43.5}, output.Data())
}

func TestConv2D_SetWeightValidatesShape(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D[float64](2, 2, 1, 1, 0, 0, true, backend)
	wrong := tensor.Ones[float64](tensor.Shape{3, 3}, backend)

	assert.Panics(t, func() { conv.SetWeight(wrong) })
	assert.Panics(t, func() { conv.SetBias(wrong) })

	noBias := NewConv2D[float64](2, 2, 1, 1, 0, 0, false, backend)
	assert.Panics(t, func() { noBias.SetBias(tensor.Zeros[float64](tensor.Shape{1}, backend)) })
}

// TestConv2D_Deterministic: repeated forwards with fixed parameters are
// bit-for-bit identical.
func TestConv2D_Deterministic(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D[float64](3, 3, 2, 2, 1, 1, true, backend)
	input := tensor.Randn[float64](tensor.Shape{9, 9}, backend)

	first := conv.Forward(input)
	second := conv.Forward(input)

	assert.Equal(t, first.Data(), second.Data())
}

// TestConv2D_GradientFlow: gradients reach both the kernel and the bias
// through the tape.
func TestConv2D_GradientFlow(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	conv := NewConv2D[float64](2, 2, 1, 1, 0, 0, true, backend)

	input, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{3, 3}, backend)
	require.NoError(t, err)

	loss := conv.Forward(input).Sum()

	_, err = autodiff.Backward(loss, conv.Weight().Tensor(), conv.Bias().Tensor())
	require.NoError(t, err)

	weightGrad := conv.Weight().Grad()
	require.NotNil(t, weightGrad)
	assert.True(t, weightGrad.Shape().Equal(tensor.Shape{2, 2}))
	// d sum(Y) / dK[a,b] = sum over windows of X[i+a, j+b]:
	// K[0,0] -> 1+2+4+5 = 12, K[0,1] -> 2+3+5+6 = 16,
	// K[1,0] -> 4+5+7+8 = 24, K[1,1] -> 5+6+8+9 = 28.
	assert.Equal(t, []float64{12, 16, 24, 28}, weightGrad.Data())

	biasGrad := conv.Bias().Grad()
	require.NotNil(t, biasGrad)
	assert.True(t, biasGrad.Shape().Equal(tensor.Shape{1}))
	// The bias feeds all 4 output elements.
	assert.Equal(t, 4.0, biasGrad.Data()[0])
}
