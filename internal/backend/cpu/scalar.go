package cpu

import (
	"fmt"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// MulScalar multiplies each element of the tensor by a scalar value.
// The scalar must be a Go number; it is converted to x's dtype.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s, err := tensor.FromScalarAs(scalar, x.DType())
	if err != nil {
		panic(fmt.Sprintf("mulScalar: %v", err))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		scaleKernel(result.AsFloat32(), x.AsFloat32(), s.AsFloat32()[0], cpu.par)
	case tensor.Float64:
		scaleKernel(result.AsFloat64(), x.AsFloat64(), s.AsFloat64()[0], cpu.par)
	case tensor.Int32:
		scaleKernel(result.AsInt32(), x.AsInt32(), s.AsInt32()[0], cpu.par)
	case tensor.Int64:
		scaleKernel(result.AsInt64(), x.AsInt64(), s.AsInt64()[0], cpu.par)
	case tensor.Float16:
		dst := make([]float32, result.NumElements())
		scaleKernel(dst, widen(x.AsFloat16()), s.AsFloat16()[0].Float32(), cpu.par)
		narrow(result.AsFloat16(), dst)
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}
