package tensor

import "testing"

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{1}, 1},
		{Shape{6, 8}, 48},
		{Shape{23, 23}, 529},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Expected error for zero dimension")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("Expected error for negative dimension")
	}
}

func TestShape_Equal(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("Equal shapes reported unequal")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("Different shapes reported equal")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 1}) {
		t.Error("Different ranks reported equal")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()

	expected := []int{12, 4, 1}
	for i, exp := range expected {
		if strides[i] != exp {
			t.Errorf("Stride[%d]: expected %d, got %d", i, exp, strides[i])
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
	}{
		{"same", Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{"scalar bias", Shape{6, 7}, Shape{1}, Shape{6, 7}, true},
		{"row", Shape{4, 3}, Shape{3}, Shape{4, 3}, true},
		{"column", Shape{3, 1}, Shape{3, 4}, Shape{3, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, needsBroadcast, err := BroadcastShapes(tt.a, tt.b)
			if err != nil {
				t.Fatalf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if needsBroadcast != tt.broadcast {
				t.Errorf("needsBroadcast = %v, want %v", needsBroadcast, tt.broadcast)
			}
		})
	}
}

func TestBroadcastShapes_Incompatible(t *testing.T) {
	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{4, 5}); err == nil {
		t.Error("Expected error for incompatible shapes")
	}
}
