package autodiff

import (
	"fmt"

	"github.com/corr-ml/corr/internal/autodiff/ops"
	"github.com/corr-ml/corr/internal/tensor"
)

// GradientTape records operations during the forward pass for later
// backpropagation.
//
// The tape is append-only during recording. Backward walks the recorded
// operations in reverse, propagating gradients from the loss back to every
// tensor that contributed to it.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape creates a new gradient tape. Recording starts disabled.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
// Useful for evaluation passes that should not build a graph.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether the tape is currently recording.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends an operation to the tape.
// Called by AutodiffBackend after each forward operation.
func (t *GradientTape) Record(op ops.Operation) {
	t.operations = append(t.operations, op)
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Clear removes all recorded operations.
// Call between iterations to avoid unbounded tape growth.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// Backward performs reverse-mode automatic differentiation.
//
// Starting from outputGrad (the gradient of the loss with respect to the last
// recorded output, typically all ones for a scalar loss), it walks the tape in
// reverse and applies the chain rule at every operation. Gradients flowing
// into the same tensor from multiple paths are accumulated by addition.
//
// The returned map contains the gradient for every tensor that participated
// in the computation, keyed by the raw tensor's identity.
func (t *GradientTape) Backward(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	if !outputGrad.Shape().Equal(output.Shape()) {
		panic(fmt.Sprintf("backward: gradient shape %v does not match output shape %v",
			outputGrad.Shape(), output.Shape()))
	}

	// Gradient accumulation must not append to the tape.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[output] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]

		outGrad, ok := grads[op.Output()]
		if !ok {
			// This operation did not contribute to the output.
			continue
		}

		inputGrads := op.Backward(outGrad, backend)
		inputs := op.Inputs()

		if len(inputGrads) != len(inputs) {
			panic(fmt.Sprintf("backward: %T returned %d gradients for %d inputs",
				op, len(inputGrads), len(inputs)))
		}

		for j, input := range inputs {
			if inputGrads[j] == nil {
				continue
			}

			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}
