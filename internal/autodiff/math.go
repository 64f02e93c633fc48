package autodiff

import "github.com/born-ml/gradgraph/internal/autodiff/ops"

// Add returns a + b. Arguments are *Node or anything NewNode accepts.
func Add(a, b any) (*Node, error) {
	return Call1(ops.Add{}, a, b)
}

// Mul returns a * b. Arguments are *Node or anything NewNode accepts.
func Mul(a, b any) (*Node, error) {
	return Call1(ops.Mul{}, a, b)
}

// Square returns x².
func Square(x any) (*Node, error) {
	return Call1(ops.Square{}, x)
}

// Exp returns eˣ.
func Exp(x any) (*Node, error) {
	return Call1(ops.Exp{}, x)
}

// Add returns n + other.
func (n *Node) Add(other any) (*Node, error) {
	return Add(n, other)
}

// Mul returns n * other.
func (n *Node) Mul(other any) (*Node, error) {
	return Mul(n, other)
}
