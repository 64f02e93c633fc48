package autodiff

import (
	"sync/atomic"
	"weak"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/tensor"
)

// Function is one recorded invocation of an Operation.
//
// It owns its input Nodes, keeping them alive for the backward pass, and
// refers to its outputs only weakly: outputs are owned by whoever uses them,
// directly or as inputs of later Functions. Once the user drops every
// reference to a subgraph, nothing in it is kept alive by the Functions that
// built it.
type Function struct {
	op         ops.Operation
	backend    tensor.Backend
	inputs     []*Node
	outputs    []weak.Pointer[Node]
	outShapes  []tensor.Shape
	outDTypes  []tensor.DataType
	generation int
	seq        uint64 // creation order, breaks generation ties in Backward
}

var functionSeq atomic.Uint64

// Op returns the Operation this Function invoked.
func (f *Function) Op() ops.Operation {
	return f.op
}

// Generation returns the maximum generation of the Function's inputs.
func (f *Function) Generation() int {
	return f.generation
}

// Inputs returns the input Nodes. The slice must not be modified.
func (f *Function) Inputs() []*Node {
	return f.inputs
}

// Outputs returns the output Nodes still alive, in order. Outputs already
// reclaimed by the garbage collector are returned as nil.
func (f *Function) Outputs() []*Node {
	outs := make([]*Node, len(f.outputs))
	for i, w := range f.outputs {
		outs[i] = w.Value()
	}
	return outs
}

// NumOutputs returns how many outputs the Function produced.
func (f *Function) NumOutputs() int {
	return len(f.outputs)
}

// Call invokes op on args using the default backend and returns its output
// Nodes.
//
// Each argument is a *Node or anything NewNode accepts; bare scalars take the
// dtype of the first *Node argument, if any. While gradient recording is
// enabled the outputs point back to a new Function that owns the inputs.
// Otherwise the outputs are plain values with no provenance.
func Call(op ops.Operation, args ...any) ([]*Node, error) {
	inputs, err := promoteArgs(args)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s", op.Name())
	}

	xs := make([]*tensor.RawTensor, len(inputs))
	for i, in := range inputs {
		xs[i] = in.value
	}

	backend := DefaultBackend()
	ys, err := op.Forward(xs, backend)
	if err != nil {
		return nil, err
	}

	outputs := make([]*Node, len(ys))
	for i, y := range ys {
		if y == nil {
			return nil, errors.Wrapf(ErrTypeMismatch, "%s: forward returned a nil array for output %d", op.Name(), i)
		}
		outputs[i] = newOutputNode(y)
	}

	if GradientRecording() {
		f := record(op, backend, inputs, outputs)
		if klog.V(3).Enabled() {
			klog.Infof("autodiff: recorded %s (generation %d, %d inputs, %d outputs)",
				op.Name(), f.generation, len(inputs), len(outputs))
		}
	}
	return outputs, nil
}

// Call1 is Call for operations with exactly one output.
func Call1(op ops.Operation, args ...any) (*Node, error) {
	outputs, err := Call(op, args...)
	if err != nil {
		return nil, err
	}
	if len(outputs) != 1 {
		return nil, errors.Wrapf(ErrInvalidArity, "%s: expected 1 output, got %d", op.Name(), len(outputs))
	}
	return outputs[0], nil
}

func record(op ops.Operation, backend tensor.Backend, inputs, outputs []*Node) *Function {
	f := &Function{
		op:        op,
		backend:   backend,
		inputs:    inputs,
		outputs:   make([]weak.Pointer[Node], len(outputs)),
		outShapes: make([]tensor.Shape, len(outputs)),
		outDTypes: make([]tensor.DataType, len(outputs)),
		seq:       functionSeq.Add(1),
	}
	for _, in := range inputs {
		f.generation = max(f.generation, in.generation)
	}
	for i, out := range outputs {
		out.setCreator(f)
		f.outputs[i] = weak.Make(out)
		f.outShapes[i] = out.value.Shape()
		f.outDTypes[i] = out.value.DType()
	}
	return f
}

func promoteArgs(args []any) ([]*Node, error) {
	var dtype *tensor.DataType
	for _, a := range args {
		if n, ok := a.(*Node); ok && n != nil {
			dt := n.DType()
			dtype = &dt
			break
		}
	}

	inputs := make([]*Node, len(args))
	for i, a := range args {
		n, err := asNode(a, dtype)
		if err != nil {
			return nil, errors.WithMessagef(err, "argument %d", i)
		}
		inputs[i] = n
	}
	return inputs, nil
}

// outputGrads gathers the gradient of every output. An output that is not
// on any path to the root, whether reclaimed or still alive, contributes
// zeros of its recorded shape. A Function none of whose outputs carries a
// gradient is ErrMissingGradient.
func (f *Function) outputGrads() ([]*tensor.RawTensor, []*Node, error) {
	gys := make([]*tensor.RawTensor, len(f.outputs))
	live := make([]*Node, len(f.outputs))
	seeded := false
	for i, w := range f.outputs {
		out := w.Value()
		live[i] = out
		if out != nil && out.grad != nil {
			gys[i] = out.grad
			seeded = true
			continue
		}
		zero, err := tensor.NewRaw(f.outShapes[i], f.outDTypes[i], f.backend.Device())
		if err != nil {
			return nil, nil, err
		}
		gys[i] = zero
	}
	if !seeded {
		return nil, nil, errors.Wrapf(ErrMissingGradient, "%s: no output has a gradient", f.op.Name())
	}
	return gys, live, nil
}
