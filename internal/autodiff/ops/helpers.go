package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/gradgraph/internal/tensor"
)

func checkArity(op, what string, want int, got []*tensor.RawTensor) error {
	if len(got) != want {
		return errors.Wrapf(ErrInvalidArity, "%s: %s expects %d values, got %d", op, what, want, len(got))
	}
	return nil
}

// checkBinary validates that a and b can meet in an elementwise kernel.
func checkBinary(op string, a, b *tensor.RawTensor) error {
	if a.DType() != b.DType() {
		return errors.Wrapf(tensor.ErrTypeMismatch, "%s: dtype %s vs %s", op, a.DType(), b.DType())
	}
	if _, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape()); err != nil {
		return errors.WithMessage(err, op)
	}
	return nil
}

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
//
// Gradients are never modified in place, so returning grad itself when the
// shapes already match is safe.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad
	}
	return backend.SumTo(grad, targetShape)
}
