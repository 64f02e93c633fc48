package ops

import "github.com/born-ml/gradgraph/internal/tensor"

// Square computes x².
//
// Backward pass: d(x²)/dx = 2x, so grad_x = 2 * x * outputGrad.
type Square struct{}

// Name returns "square".
func (Square) Name() string { return "square" }

// Forward computes x * x.
func (op Square) Forward(xs []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "forward", 1, xs); err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{backend.Mul(xs[0], xs[0])}, nil
}

// Backward returns 2 * x * gy.
func (op Square) Backward(xs, gys []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "backward", 1, xs); err != nil {
		return nil, err
	}
	if err := checkArity(op.Name(), "backward", 1, gys); err != nil {
		return nil, err
	}
	gx := backend.MulScalar(backend.Mul(xs[0], gys[0]), 2)
	return []*tensor.RawTensor{gx}, nil
}
