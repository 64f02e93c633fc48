package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// Exp computes eˣ element-wise.
//
// Backward pass: d(eˣ)/dx = eˣ, so grad_x = eˣ * outputGrad.
// The output is recomputed from the retained input rather than stored.
type Exp struct{}

// Name returns "exp".
func (Exp) Name() string { return "exp" }

// Forward computes eˣ. Integer inputs are rejected.
func (op Exp) Forward(xs []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "forward", 1, xs); err != nil {
		return nil, err
	}
	if !xs[0].DType().IsFloat() {
		return nil, errors.Wrapf(tensor.ErrTypeMismatch, "%s: requires a float dtype, got %s", op.Name(), xs[0].DType())
	}
	return []*tensor.RawTensor{backend.Exp(xs[0])}, nil
}

// Backward returns eˣ * gy.
func (op Exp) Backward(xs, gys []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "backward", 1, xs); err != nil {
		return nil, err
	}
	if err := checkArity(op.Name(), "backward", 1, gys); err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{backend.Mul(backend.Exp(xs[0]), gys[0])}, nil
}
