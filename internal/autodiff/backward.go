package autodiff

import (
	"container/heap"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// Backward computes the gradient of n with respect to every Node it was
// computed from. See the package-level Backward.
func (n *Node) Backward(retainGrad bool) error {
	return Backward(n, retainGrad)
}

// Backward runs reverse-mode differentiation from root.
//
// Algorithm:
//  1. Seed root's gradient with ones unless one was set already
//  2. Pop the pending Function with the highest generation
//  3. Call its Operation's Backward with its outputs' gradients
//  4. Accumulate the results into its inputs, summing when a Node feeds more
//     than one Function, and queue the inputs' creators
//
// Every consumer of a Node sits at a higher generation than the Node's
// creator, so by the time a Function is popped its outputs' gradients are
// complete. Each Function runs at most once.
//
// Unless retainGrad is set, the gradients of intermediate Nodes are released
// as soon as their creator has run; only leaves and root keep theirs.
//
// Calling Backward on a Node with no creator only seeds its gradient.
func Backward(root *Node, retainGrad bool) error {
	if root == nil {
		return errors.Wrap(ErrTypeMismatch, "backward: nil root")
	}
	if root.grad == nil {
		root.grad = tensor.OnesLike(root.value)
	}
	if root.creator == nil {
		return nil
	}

	queue := &functionQueue{}
	seen := make(map[*Function]struct{})
	push := func(f *Function) {
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		heap.Push(queue, f)
	}
	push(root.creator)

	for queue.Len() > 0 {
		f := heap.Pop(queue).(*Function)
		if err := step(f, root, retainGrad, push); err != nil {
			return err
		}
	}
	return nil
}

func step(f *Function, root *Node, retainGrad bool, push func(*Function)) error {
	gys, outputs, err := f.outputGrads()
	if err != nil {
		return err
	}

	xs := make([]*tensor.RawTensor, len(f.inputs))
	for i, in := range f.inputs {
		xs[i] = in.value
	}

	gxs, err := f.op.Backward(xs, gys, f.backend)
	if err != nil {
		return err
	}
	if len(gxs) != len(f.inputs) {
		return errors.Wrapf(ErrInvalidArity, "%s: backward returned %d gradients for %d inputs",
			f.op.Name(), len(gxs), len(f.inputs))
	}
	klog.V(2).Infof("autodiff: backward %s (generation %d)", f.op.Name(), f.generation)

	for i, in := range f.inputs {
		gx := gxs[i]
		if gx == nil {
			continue
		}
		if in.grad == nil {
			in.grad = gx
		} else {
			in.grad = f.backend.Add(in.grad, gx)
		}
		if in.creator != nil {
			push(in.creator)
		}
	}

	if !retainGrad {
		for _, out := range outputs {
			if out != nil && out != root {
				out.grad = nil
			}
		}
	}
	return nil
}

// functionQueue is a max-heap of Functions ordered by generation. Ties go to
// the Function created last, which is the order a stable sort-then-pop
// worklist would produce.
type functionQueue []*Function

func (q functionQueue) Len() int { return len(q) }

func (q functionQueue) Less(i, j int) bool {
	if q[i].generation != q[j].generation {
		return q[i].generation > q[j].generation
	}
	return q[i].seq > q[j].seq
}

func (q functionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *functionQueue) Push(x any) { *q = append(*q, x.(*Function)) }

func (q *functionQueue) Pop() any {
	old := *q
	n := len(old)
	f := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return f
}
