package ops

import "github.com/born-ml/gradgraph/internal/tensor"

// Mul represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type Mul struct{}

// Name returns "mul".
func (Mul) Name() string { return "mul" }

// Forward computes a * b.
func (op Mul) Forward(xs []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "forward", 2, xs); err != nil {
		return nil, err
	}
	if err := checkBinary(op.Name(), xs[0], xs[1]); err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{backend.Mul(xs[0], xs[1])}, nil
}

// Backward returns (gy * b, gy * a).
func (op Mul) Backward(xs, gys []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "backward", 2, xs); err != nil {
		return nil, err
	}
	if err := checkArity(op.Name(), "backward", 1, gys); err != nil {
		return nil, err
	}
	a, b, gy := xs[0], xs[1], gys[0]

	gradA := reduceBroadcast(backend.Mul(gy, b), a.Shape(), backend)
	gradB := reduceBroadcast(backend.Mul(gy, a), b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}, nil
}
