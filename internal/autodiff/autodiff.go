// Package autodiff implements reverse-mode automatic differentiation over a
// dynamic computation graph.
//
// Architecture:
//   - Node: a value, its accumulated gradient and a link to its creator
//   - Function: one recorded call of an ops.Operation; owns its inputs and
//     holds weak references to its outputs
//   - Backward: walks creators from a root in descending generation order,
//     accumulating gradients into every Node on the way
//   - Execution mode: a process-wide switch that turns graph recording off
//     for inference (NoGrad)
//
// The graph is built as operations execute; there is no separate tape.
//
// Usage:
//
//	x0, _ := autodiff.NewNode(1.0)
//	x1, _ := autodiff.NewNode(1.0)
//	t, _ := autodiff.Add(x0, x1) // 2.0
//	y, _ := autodiff.Add(x0, t)  // 3.0
//
//	_ = y.Backward(false)
//	fmt.Println(x0.Grad()) // 2.0
//	fmt.Println(x1.Grad()) // 1.0
//
// The engine is not safe for concurrent use: build a graph and run Backward on
// it from one goroutine at a time.
package autodiff
