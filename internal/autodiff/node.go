package autodiff

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// Node is a value flowing through the computation graph.
//
// A Node created by NewNode is a leaf. A Node returned by Call is an output of
// a Function; while gradient recording is enabled it points back to that
// Function (its creator) and sits one generation above it.
//
// The gradient is absent until a backward pass accumulates into it, and has
// the same shape and dtype as the value.
type Node struct {
	value      *tensor.RawTensor
	grad       *tensor.RawTensor
	creator    *Function
	generation int
	name       string
}

// NewNode creates a leaf Node. v may be a *tensor.RawTensor, a bare Go scalar
// (promoted to a zero-dimensional array) or a 1-D Go slice. Anything else
// fails with ErrTypeMismatch.
func NewNode(v any, name ...string) (*Node, error) {
	if _, ok := v.(*Node); ok {
		return nil, errors.Wrap(ErrTypeMismatch, "value is already a Node")
	}
	value, err := tensor.AsArray(v)
	if err != nil {
		return nil, errors.WithMessage(err, "new node")
	}
	n := &Node{value: value}
	if len(name) > 0 {
		n.name = name[0]
	}
	return n, nil
}

func newOutputNode(value *tensor.RawTensor) *Node {
	return &Node{value: value}
}

// asNode returns v if it is already a Node; otherwise it promotes v to a
// leaf. Scalars adopt dtype when one is given, so that 1.0 can meet a float32
// Node.
func asNode(v any, dtype *tensor.DataType) (*Node, error) {
	if n, ok := v.(*Node); ok {
		if n == nil {
			return nil, errors.Wrap(ErrTypeMismatch, "nil node")
		}
		return n, nil
	}
	if dtype != nil && tensor.IsScalar(v) {
		value, err := tensor.FromScalarAs(v, *dtype)
		if err != nil {
			return nil, err
		}
		return &Node{value: value}, nil
	}
	return NewNode(v)
}

// Value returns the array held by the node.
func (n *Node) Value() *tensor.RawTensor {
	return n.value
}

// Grad returns the accumulated gradient, or nil if none has been computed
// (or it was released after a backward pass).
func (n *Node) Grad() *tensor.RawTensor {
	return n.grad
}

// SetGrad replaces the gradient. Setting it before Backward overrides the
// default seed of ones. The gradient must match the value's shape and dtype.
func (n *Node) SetGrad(grad *tensor.RawTensor) error {
	if grad == nil {
		n.grad = nil
		return nil
	}
	if !grad.Shape().Equal(n.value.Shape()) {
		return errors.Wrapf(ErrTypeMismatch, "gradient shape %v does not match value shape %v", grad.Shape(), n.value.Shape())
	}
	if grad.DType() != n.value.DType() {
		return errors.Wrapf(ErrTypeMismatch, "gradient dtype %s does not match value dtype %s", grad.DType(), n.value.DType())
	}
	n.grad = grad
	return nil
}

// ClearGrad drops the accumulated gradient.
func (n *Node) ClearGrad() {
	n.grad = nil
}

// Creator returns the Function that produced this node, or nil for leaves
// and for nodes produced while gradient recording was disabled.
func (n *Node) Creator() *Function {
	return n.creator
}

// IsLeaf reports whether the node has no creator.
func (n *Node) IsLeaf() bool {
	return n.creator == nil
}

// Generation returns the node's depth in the graph: 0 for leaves, creator's
// generation plus one otherwise.
func (n *Node) Generation() int {
	return n.generation
}

// setCreator wires provenance from n to f.
func (n *Node) setCreator(f *Function) {
	n.creator = f
	n.generation = f.generation + 1
}

// Shape returns the shape of the value.
func (n *Node) Shape() tensor.Shape { return n.value.Shape() }

// NDim returns the number of dimensions of the value.
func (n *Node) NDim() int { return n.value.NDim() }

// Size returns the number of elements of the value.
func (n *Node) Size() int { return n.value.NumElements() }

// DType returns the data type of the value.
func (n *Node) DType() tensor.DataType { return n.value.DType() }

// Len returns the size of the first dimension, or 0 for a zero-dimensional
// value.
func (n *Node) Len() int {
	if n.value.NDim() == 0 {
		return 0
	}
	return n.value.Shape()[0]
}

// Name returns the optional debugging name.
func (n *Node) Name() string { return n.name }

// SetName sets the debugging name and returns n for chaining.
func (n *Node) SetName(name string) *Node {
	n.name = name
	return n
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	if n.name != "" {
		return fmt.Sprintf("node(%s: %s)", n.name, n.value)
	}
	return fmt.Sprintf("node(%s)", n.value)
}
