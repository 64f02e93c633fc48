package ops

import "github.com/born-ml/gradgraph/internal/tensor"

// Add represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If broadcasting was used in the forward pass, gradients are summed along
// the broadcast dimensions to match input shapes.
type Add struct{}

// Name returns "add".
func (Add) Name() string { return "add" }

// Forward computes a + b.
func (op Add) Forward(xs []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "forward", 2, xs); err != nil {
		return nil, err
	}
	if err := checkBinary(op.Name(), xs[0], xs[1]); err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{backend.Add(xs[0], xs[1])}, nil
}

// Backward passes the output gradient unchanged to both inputs.
func (op Add) Backward(xs, gys []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	if err := checkArity(op.Name(), "backward", 2, xs); err != nil {
		return nil, err
	}
	if err := checkArity(op.Name(), "backward", 1, gys); err != nil {
		return nil, err
	}
	gy := gys[0]
	return []*tensor.RawTensor{
		reduceBroadcast(gy, xs[0].Shape(), backend),
		reduceBroadcast(gy, xs[1].Shape(), backend),
	}, nil
}
