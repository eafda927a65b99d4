package cpu

import (
	"fmt"
	"math"
	"testing"

	"github.com/corr-ml/corr/internal/tensor"
)

// The mock backend pads explicitly and then runs a valid-mode correlation,
// while the CPU backend keeps padding implicit inside the sliding loop. The
// two formulations must agree exactly for every configuration.

// TestCorr2D_EquivalenceSweep exhaustively compares the two backends over a
// grid of kernel sizes, paddings and strides on a fixed 23x23 input.
func TestCorr2D_EquivalenceSweep(t *testing.T) {
	kernels := [][2]int{{5, 3}, {7, 3}, {9, 7}, {3, 11}}
	paddings := [][2]int{{2, 1}, {2, 2}, {3, 5}, {9, 13}}
	strides := [][2]int{{1, 3}, {3, 5}, {7, 3}}

	const n = 23
	cpuBackend := New()
	mockBackend := tensor.NewMockBackend()

	input, err := tensor.NewRaw(tensor.Shape{n, n}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	inputData := input.AsFloat64()
	for i := range inputData {
		inputData[i] = math.Sin(float64(i) * 0.37)
	}

	for _, k := range kernels {
		for _, p := range paddings {
			for _, s := range strides {
				name := fmt.Sprintf("k%dx%d_p%dx%d_s%dx%d", k[0], k[1], p[0], p[1], s[0], s[1])
				t.Run(name, func(t *testing.T) {
					kernel, err := tensor.NewRaw(tensor.Shape{k[0], k[1]}, tensor.Float64, tensor.CPU)
					if err != nil {
						t.Fatal(err)
					}
					kernelData := kernel.AsFloat64()
					for i := range kernelData {
						kernelData[i] = math.Cos(float64(i) * 0.91)
					}

					got := cpuBackend.Corr2D(input, kernel, s[0], s[1], p[0], p[1])
					want := mockBackend.Corr2D(input, kernel, s[0], s[1], p[0], p[1])

					if !got.Shape().Equal(want.Shape()) {
						t.Fatalf("shape mismatch: cpu %v, mock %v", got.Shape(), want.Shape())
					}

					gotData := got.AsFloat64()
					wantData := want.AsFloat64()
					for i := range gotData {
						if math.Abs(gotData[i]-wantData[i]) > 1e-6 {
							t.Fatalf("element %d: cpu %v, mock %v", i, gotData[i], wantData[i])
						}
					}
				})
			}
		}
	}
}

// TestCorr2D_PadThenValidEquivalence: explicit Pad2D followed by a valid
// correlation equals the implicit-padding path.
func TestCorr2D_PadThenValidEquivalence(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{7, 9}, tensor.Float64, tensor.CPU)
	for i := range input.AsFloat64() {
		input.AsFloat64()[i] = float64(i%13) - 6
	}
	kernel, _ := tensor.NewRaw(tensor.Shape{3, 4}, tensor.Float64, tensor.CPU)
	for i := range kernel.AsFloat64() {
		kernel.AsFloat64()[i] = float64(i) * 0.25
	}

	implicit := backend.Corr2D(input, kernel, 2, 2, 2, 3)

	padded := backend.Pad2D(input, 2, 3)
	explicit := backend.Corr2D(padded, kernel, 2, 2, 0, 0)

	if !implicit.Shape().Equal(explicit.Shape()) {
		t.Fatalf("shape mismatch: implicit %v, explicit %v", implicit.Shape(), explicit.Shape())
	}
	for i := range implicit.AsFloat64() {
		if implicit.AsFloat64()[i] != explicit.AsFloat64()[i] {
			t.Fatalf("element %d: implicit %v, explicit %v",
				i, implicit.AsFloat64()[i], explicit.AsFloat64()[i])
		}
	}
}
