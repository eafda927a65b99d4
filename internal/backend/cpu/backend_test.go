package cpu

import (
	"testing"

	"github.com/corr-ml/corr/internal/tensor"
)

func TestAdd_SameShape(t *testing.T) {
	backend := New()

	a := newFloat64(t, tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	b := newFloat64(t, tensor.Shape{2, 3}, []float64{10, 20, 30, 40, 50, 60})

	result := backend.Add(a, b)

	expected := []float64{11, 22, 33, 44, 55, 66}
	for i, exp := range expected {
		if result.AsFloat64()[i] != exp {
			t.Errorf("Result[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat64()[i])
		}
	}
}

// TestAdd_BroadcastScalar: a one-element tensor broadcasts over the whole
// other operand. This is how the scalar bias is applied.
func TestAdd_BroadcastScalar(t *testing.T) {
	backend := New()

	a := newFloat64(t, tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	bias := newFloat64(t, tensor.Shape{1}, []float64{0.5})

	result := backend.Add(a, bias)

	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Expected shape [2 3], got %v", result.Shape())
	}
	expected := []float64{1.5, 2.5, 3.5, 4.5, 5.5, 6.5}
	for i, exp := range expected {
		if result.AsFloat64()[i] != exp {
			t.Errorf("Result[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat64()[i])
		}
	}
}

func TestSub(t *testing.T) {
	backend := New()

	a := newFloat64(t, tensor.Shape{3}, []float64{5, 7, 9})
	b := newFloat64(t, tensor.Shape{3}, []float64{1, 2, 3})

	result := backend.Sub(a, b)

	expected := []float64{4, 5, 6}
	for i, exp := range expected {
		if result.AsFloat64()[i] != exp {
			t.Errorf("Result[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat64()[i])
		}
	}
}

func TestMul(t *testing.T) {
	backend := New()

	a := newFloat64(t, tensor.Shape{3}, []float64{2, 3, 4})
	b := newFloat64(t, tensor.Shape{3}, []float64{5, 6, 7})

	result := backend.Mul(a, b)

	expected := []float64{10, 18, 28}
	for i, exp := range expected {
		if result.AsFloat64()[i] != exp {
			t.Errorf("Result[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat64()[i])
		}
	}
}

func TestMulScalar(t *testing.T) {
	backend := New()

	x := newFloat64(t, tensor.Shape{2, 2}, []float64{1, -2, 3, -4})

	result := backend.MulScalar(x, -1.0)

	expected := []float64{-1, 2, -3, 4}
	for i, exp := range expected {
		if result.AsFloat64()[i] != exp {
			t.Errorf("Result[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat64()[i])
		}
	}
}

func TestSum(t *testing.T) {
	backend := New()

	x := newFloat64(t, tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})

	result := backend.Sum(x)

	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("Expected shape [1], got %v", result.Shape())
	}
	if result.AsFloat64()[0] != 21 {
		t.Errorf("Expected 21, got %.1f", result.AsFloat64()[0])
	}
}

func TestAdd_ShapeMismatchPanics(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{4, 5}, tensor.Float64, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for incompatible shapes")
		}
	}()
	backend.Add(a, b)
}

func TestAdd_DTypeMismatchPanics(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for dtype mismatch")
		}
	}()
	backend.Add(a, b)
}

func TestBackendMetadata(t *testing.T) {
	backend := New()

	if backend.Name() != "CPU" {
		t.Errorf("Expected name CPU, got %s", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected device CPU, got %v", backend.Device())
	}
}
