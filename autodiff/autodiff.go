// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over a
// dynamic computation graph.
//
// Every call to an operation records, next to its result, the Function that
// produced it. Backward walks those links from a result back to its inputs
// and accumulates a gradient into every Node on the way.
//
// Example:
//
//	import "github.com/born-ml/gradgraph/autodiff"
//
//	func main() {
//	    x0, _ := autodiff.NewNode(1.0)
//	    x1, _ := autodiff.NewNode(1.0)
//	    t, _ := autodiff.Add(x0, x1)
//	    y, _ := autodiff.Add(x0, t)
//
//	    _ = y.Backward(false)
//	    fmt.Println(x0.Grad(), x1.Grad()) // 2, 1
//
//	    // Inference without building a graph
//	    autodiff.NoGrad(func() {
//	        z, _ := autodiff.Mul(x0, 3.0)
//	        fmt.Println(z.Creator() == nil) // true
//	    })
//	}
package autodiff

import (
	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/tensor"
)

// Node is a value in the computation graph.
type Node = autodiff.Node

// Function is one recorded invocation of an Operation.
type Function = autodiff.Function

// Operation is the forward/backward rule implemented by every differentiable
// operation. Implement it to add new operations and invoke them with Call.
type Operation = ops.Operation

// GraphStats summarizes the graph reachable from a Node.
type GraphStats = autodiff.GraphStats

// Built-in operations.
type (
	AddOp    = ops.Add
	MulOp    = ops.Mul
	SquareOp = ops.Square
	ExpOp    = ops.Exp
)

// Errors.
var (
	ErrTypeMismatch    = autodiff.ErrTypeMismatch
	ErrInvalidArity    = autodiff.ErrInvalidArity
	ErrMissingGradient = autodiff.ErrMissingGradient
)

// NewNode creates a leaf Node from a RawTensor, a bare scalar or a 1-D slice.
func NewNode(v any, name ...string) (*Node, error) {
	return autodiff.NewNode(v, name...)
}

// Call invokes op on args and returns its outputs.
func Call(op Operation, args ...any) ([]*Node, error) {
	return autodiff.Call(op, args...)
}

// Call1 invokes a single-output op on args.
func Call1(op Operation, args ...any) (*Node, error) {
	return autodiff.Call1(op, args...)
}

// Add returns a + b.
func Add(a, b any) (*Node, error) { return autodiff.Add(a, b) }

// Mul returns a * b.
func Mul(a, b any) (*Node, error) { return autodiff.Mul(a, b) }

// Square returns x².
func Square(x any) (*Node, error) { return autodiff.Square(x) }

// Exp returns eˣ.
func Exp(x any) (*Node, error) { return autodiff.Exp(x) }

// Backward runs reverse-mode differentiation from root.
func Backward(root *Node, retainGrad bool) error {
	return autodiff.Backward(root, retainGrad)
}

// GradientRecording reports whether operations currently record provenance.
func GradientRecording() bool { return autodiff.GradientRecording() }

// SetGradientRecording sets the recording mode and returns a restore
// function.
func SetGradientRecording(enabled bool) (restore func()) {
	return autodiff.SetGradientRecording(enabled)
}

// NoGrad runs fn with gradient recording disabled.
func NoGrad(fn func()) { autodiff.NoGrad(fn) }

// NoGradE runs fn with gradient recording disabled and returns its error.
func NoGradE(fn func() error) error { return autodiff.NoGradE(fn) }

// DefaultBackend returns the backend new operations run on.
func DefaultBackend() tensor.Backend { return autodiff.DefaultBackend() }

// SetDefaultBackend swaps the backend and returns a restore function.
func SetDefaultBackend(backend tensor.Backend) (restore func()) {
	return autodiff.SetDefaultBackend(backend)
}

// Walk visits every Function reachable from root once.
func Walk(root *Node, fn func(f *Function) bool) { autodiff.Walk(root, fn) }

// Nodes returns every live Node reachable from root.
func Nodes(root *Node) []*Node { return autodiff.Nodes(root) }

// ClearGrads drops the gradient of every Node reachable from root.
func ClearGrads(root *Node) { autodiff.ClearGrads(root) }

// Stats summarizes the graph reachable from root.
func Stats(root *Node) GraphStats { return autodiff.Stats(root) }
