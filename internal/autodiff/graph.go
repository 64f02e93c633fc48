package autodiff

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Walk calls fn once for every Function reachable from root through
// provenance, starting with root's creator and moving towards the leaves.
// Returning false from fn stops the walk.
func Walk(root *Node, fn func(f *Function) bool) {
	if root == nil || root.creator == nil {
		return
	}
	seen := map[*Function]struct{}{root.creator: {}}
	stack := []*Function{root.creator}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f) {
			return
		}
		for _, in := range f.inputs {
			if in.creator == nil {
				continue
			}
			if _, ok := seen[in.creator]; ok {
				continue
			}
			seen[in.creator] = struct{}{}
			stack = append(stack, in.creator)
		}
	}
}

// Nodes returns every live Node reachable from root, root first, each once.
func Nodes(root *Node) []*Node {
	if root == nil {
		return nil
	}
	seen := map[*Node]struct{}{root: {}}
	nodes := []*Node{root}
	add := func(n *Node) {
		if n == nil {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		nodes = append(nodes, n)
	}
	Walk(root, func(f *Function) bool {
		for _, out := range f.Outputs() {
			add(out)
		}
		for _, in := range f.inputs {
			add(in)
		}
		return true
	})
	return nodes
}

// ClearGrads drops the gradient of every Node reachable from root, root
// included, so the next Backward starts from a clean slate.
func ClearGrads(root *Node) {
	for _, n := range Nodes(root) {
		n.grad = nil
	}
}

// GraphStats summarizes the graph reachable from a Node.
type GraphStats struct {
	Functions     int // recorded Functions
	Nodes         int // live Nodes, leaves included
	Leaves        int // Nodes with no creator
	MaxGeneration int // highest Node generation
	ValueBytes    int // bytes held by Node values
	GradBytes     int // bytes held by Node gradients
}

// Stats walks the graph reachable from root.
func Stats(root *Node) GraphStats {
	var s GraphStats
	Walk(root, func(*Function) bool {
		s.Functions++
		return true
	})
	for _, n := range Nodes(root) {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
		}
		s.MaxGeneration = max(s.MaxGeneration, n.generation)
		s.ValueBytes += n.value.ByteSize()
		if n.grad != nil {
			s.GradBytes += n.grad.ByteSize()
		}
	}
	return s
}

// String implements fmt.Stringer.
func (s GraphStats) String() string {
	return fmt.Sprintf("%d functions, %d nodes (%d leaves), max generation %d, values %s, gradients %s",
		s.Functions, s.Nodes, s.Leaves, s.MaxGeneration,
		humanize.IBytes(uint64(s.ValueBytes)), humanize.IBytes(uint64(s.GradBytes)))
}
