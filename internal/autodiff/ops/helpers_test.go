package ops

import (
	"testing"

	"github.com/corr-ml/corr/internal/tensor"
)

func rawFrom(t *testing.T, shape tensor.Shape, data []float64) *tensor.RawTensor {
	t.Helper()

	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat64(), data)
	return raw
}

// TestReduceBroadcast_SameShape returns an independent copy.
func TestReduceBroadcast_SameShape(t *testing.T) {
	grad := rawFrom(t, tensor.Shape{2, 2}, []float64{1, 2, 3, 4})

	result := reduceBroadcast(grad, tensor.Shape{2, 2}, nil)

	if result == grad {
		t.Fatal("Expected a copy, got the same tensor")
	}
	for i, v := range grad.AsFloat64() {
		if result.AsFloat64()[i] != v {
			t.Errorf("Result[%d]: expected %v, got %v", i, v, result.AsFloat64()[i])
		}
	}
}

// TestReduceBroadcast_ToScalar sums every element into the single bias slot.
func TestReduceBroadcast_ToScalar(t *testing.T) {
	grad := rawFrom(t, tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})

	result := reduceBroadcast(grad, tensor.Shape{1}, nil)

	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("Expected shape [1], got %v", result.Shape())
	}
	if result.AsFloat64()[0] != 21 {
		t.Errorf("Expected 21, got %v", result.AsFloat64()[0])
	}
}

// TestReduceBroadcast_Column reduces over the broadcast dimension only.
func TestReduceBroadcast_Column(t *testing.T) {
	// Forward was [3,1] broadcast against [3,2]; reduce back to [3,1].
	grad := rawFrom(t, tensor.Shape{3, 2}, []float64{1, 2, 3, 4, 5, 6})

	result := reduceBroadcast(grad, tensor.Shape{3, 1}, nil)

	if !result.Shape().Equal(tensor.Shape{3, 1}) {
		t.Fatalf("Expected shape [3 1], got %v", result.Shape())
	}
	expected := []float64{3, 7, 11}
	for i, exp := range expected {
		if result.AsFloat64()[i] != exp {
			t.Errorf("Result[%d]: expected %v, got %v", i, exp, result.AsFloat64()[i])
		}
	}
}
