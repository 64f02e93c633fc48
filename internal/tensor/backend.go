package tensor

// Backend defines the elementwise arithmetic the autodiff engine delegates to.
// Backends handle the actual computation; the engine only moves tensors
// between them.
//
// Binary operations follow NumPy-style broadcasting and require both operands
// to share a dtype. Implementations panic on shape or dtype mismatch; callers
// validate before reaching the backend.
//
// Implementations:
//   - CPU: Pure Go, chunked across goroutines for large tensors
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Element-wise unary operations
	Exp(x *RawTensor) *RawTensor                   // exponential
	MulScalar(x *RawTensor, scalar any) *RawTensor // multiply by scalar

	// SumTo reduces x to shape by summing over broadcast dimensions.
	// Used to bring gradients of broadcast operands back to their own shape.
	SumTo(x *RawTensor, shape Shape) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
