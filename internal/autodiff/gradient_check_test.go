package autodiff_test

import (
	"math"
	"testing"

	"github.com/corr-ml/corr/internal/autodiff"
	"github.com/corr-ml/corr/internal/backend/cpu"
	"github.com/corr-ml/corr/internal/tensor"
)

const (
	fdEpsilon = 1e-6
	gradTol   = 1e-5
)

// corrLoss computes sum(Corr2D(input, kernel)) on a plain CPU backend, with
// the input given as a flat slice. Used as the scalar function for finite
// differences.
func corrLoss(t *testing.T, inputData []float64, inputShape tensor.Shape, kernelData []float64, kernelShape tensor.Shape, strideH, strideW, padH, padW int) float64 {
	t.Helper()

	backend := cpu.New()

	input, err := tensor.NewRaw(inputShape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(input.AsFloat64(), inputData)

	kernel, err := tensor.NewRaw(kernelShape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(kernel.AsFloat64(), kernelData)

	out := backend.Corr2D(input, kernel, strideH, strideW, padH, padW)

	return backend.Sum(out).AsFloat64()[0]
}

// TestCorr2DGradient_FiniteDifference checks both Corr2D gradients against
// central finite differences of the scalar loss sum(Corr2D(x, k)).
func TestCorr2DGradient_FiniteDifference(t *testing.T) {
	inputShape := tensor.Shape{5, 6}
	kernelShape := tensor.Shape{3, 2}
	strideH, strideW := 2, 1
	padH, padW := 1, 1

	inputData := make([]float64, inputShape.NumElements())
	for i := range inputData {
		inputData[i] = math.Sin(float64(i)*0.7) * 2
	}
	kernelData := make([]float64, kernelShape.NumElements())
	for i := range kernelData {
		kernelData[i] = math.Cos(float64(i) * 1.3)
	}

	// Autodiff gradients.
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice(inputData, inputShape, backend)
	if err != nil {
		t.Fatal(err)
	}
	k, err := tensor.FromSlice(kernelData, kernelShape, backend)
	if err != nil {
		t.Fatal(err)
	}

	loss := x.Corr2DStrided(k, strideH, strideW, padH, padW).Sum()

	grads, err := autodiff.Backward(loss)
	if err != nil {
		t.Fatal(err)
	}

	inputGrad := grads[x.Raw()].AsFloat64()
	kernelGrad := grads[k.Raw()].AsFloat64()

	// Finite-difference input gradient.
	for i := range inputData {
		perturbed := make([]float64, len(inputData))
		copy(perturbed, inputData)

		perturbed[i] = inputData[i] + fdEpsilon
		plus := corrLoss(t, perturbed, inputShape, kernelData, kernelShape, strideH, strideW, padH, padW)

		perturbed[i] = inputData[i] - fdEpsilon
		minus := corrLoss(t, perturbed, inputShape, kernelData, kernelShape, strideH, strideW, padH, padW)

		numerical := (plus - minus) / (2 * fdEpsilon)
		if math.Abs(inputGrad[i]-numerical) > gradTol {
			t.Errorf("Input gradient[%d]: autodiff %v, numerical %v", i, inputGrad[i], numerical)
		}
	}

	// Finite-difference kernel gradient.
	for i := range kernelData {
		perturbed := make([]float64, len(kernelData))
		copy(perturbed, kernelData)

		perturbed[i] = kernelData[i] + fdEpsilon
		plus := corrLoss(t, inputData, inputShape, perturbed, kernelShape, strideH, strideW, padH, padW)

		perturbed[i] = kernelData[i] - fdEpsilon
		minus := corrLoss(t, inputData, inputShape, perturbed, kernelShape, strideH, strideW, padH, padW)

		numerical := (plus - minus) / (2 * fdEpsilon)
		if math.Abs(kernelGrad[i]-numerical) > gradTol {
			t.Errorf("Kernel gradient[%d]: autodiff %v, numerical %v", i, kernelGrad[i], numerical)
		}
	}
}

// TestCorr2DGradient_MockEquivalence compares gradients computed through the
// CPU backend against the mock backend's independent backward loops.
func TestCorr2DGradient_MockEquivalence(t *testing.T) {
	inputShape := tensor.Shape{9, 8}
	kernelShape := tensor.Shape{3, 3}
	strideH, strideW := 2, 3
	padH, padW := 1, 2

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	inputData := make([]float64, inputShape.NumElements())
	for i := range inputData {
		inputData[i] = float64(i%11) - 5
	}
	kernelData := make([]float64, kernelShape.NumElements())
	for i := range kernelData {
		kernelData[i] = float64(i) * 0.5
	}

	x, _ := tensor.FromSlice(inputData, inputShape, backend)
	k, _ := tensor.FromSlice(kernelData, kernelShape, backend)

	loss := x.Corr2DStrided(k, strideH, strideW, padH, padW).Sum()

	grads, err := autodiff.Backward(loss)
	if err != nil {
		t.Fatal(err)
	}

	// Seed for the mock backward: gradient of sum is all ones over the output.
	out := backend.Inner().Corr2D(x.Raw(), k.Raw(), strideH, strideW, padH, padW)
	seed, _ := tensor.NewRaw(out.Shape(), tensor.Float64, tensor.CPU)
	for i := range seed.AsFloat64() {
		seed.AsFloat64()[i] = 1
	}

	mock := tensor.NewMockBackend()
	wantInput := mock.Corr2DInputBackward(x.Raw(), k.Raw(), seed, strideH, strideW, padH, padW)
	wantKernel := mock.Corr2DKernelBackward(x.Raw(), k.Raw(), seed, strideH, strideW, padH, padW)

	gotInput := grads[x.Raw()].AsFloat64()
	for i, want := range wantInput.AsFloat64() {
		if math.Abs(gotInput[i]-want) > gradTol {
			t.Errorf("Input gradient[%d]: cpu %v, mock %v", i, gotInput[i], want)
		}
	}

	gotKernel := grads[k.Raw()].AsFloat64()
	for i, want := range wantKernel.AsFloat64() {
		if math.Abs(gotKernel[i]-want) > gradTol {
			t.Errorf("Kernel gradient[%d]: cpu %v, mock %v", i, gotKernel[i], want)
		}
	}
}
