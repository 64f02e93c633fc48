// Package ops defines the Operation capability set and the differentiable
// operations built on it.
//
// An Operation is a pure rule: Forward maps input arrays to output arrays and
// Backward maps output gradients to input gradients. Operations hold no
// per-call state; the autodiff package records which Nodes went in and came
// out and hands the retained input values back to Backward.
//
// Supported operations:
//   - Add: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - Mul: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - Square: x² (d(x²)/dx = 2x)
//   - Exp: eˣ (d(eˣ)/dx = eˣ)
package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// ErrInvalidArity is returned when Forward or Backward receives the wrong
// number of values.
var ErrInvalidArity = errors.New("invalid arity")

// Operation represents a differentiable computation.
type Operation interface {
	// Name identifies the operation in logs and errors.
	Name() string

	// Forward computes the outputs from the input values.
	Forward(xs []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error)

	// Backward computes one gradient per input, given the input values of the
	// forward call and one gradient per output.
	//
	// Example for Add:
	//   xs:  [a, b]
	//   gys: [dL/d(a+b)]
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(xs, gys []*tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error)
}
