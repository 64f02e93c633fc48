package cpu

import (
	"fmt"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// SumTo sums x down to shape, the inverse of broadcasting shape up to
// x.Shape(). Leading dimensions missing from shape and dimensions where
// shape has size 1 are summed away.
//
// Example:
//
//	x: [2, 3]
//	backend.SumTo(x, tensor.Shape{1, 3}) // shape: [1, 3], column sums
//	backend.SumTo(x, tensor.Shape{})     // shape: [], total sum
func (cpu *CPUBackend) SumTo(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if x.Shape().Equal(shape) {
		return x.Clone()
	}

	broadcastShape, _, err := tensor.BroadcastShapes(shape, x.Shape())
	if err != nil || !broadcastShape.Equal(x.Shape()) {
		panic(fmt.Sprintf("sumTo: cannot reduce %v to %v", x.Shape(), shape))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumTo: %v", err))
	}

	outStrides := x.Shape().ComputeStrides()
	dstStrides := computeBroadcastStridesForShape(shape, x.Shape())

	switch x.DType() {
	case tensor.Float32:
		sumToKernel(result.AsFloat32(), x.AsFloat32(), outStrides, dstStrides)
	case tensor.Float64:
		sumToKernel(result.AsFloat64(), x.AsFloat64(), outStrides, dstStrides)
	case tensor.Int32:
		sumToKernel(result.AsInt32(), x.AsInt32(), outStrides, dstStrides)
	case tensor.Int64:
		sumToKernel(result.AsInt64(), x.AsInt64(), outStrides, dstStrides)
	case tensor.Float16:
		dst := make([]float32, result.NumElements())
		sumToKernel(dst, widen(x.AsFloat16()), outStrides, dstStrides)
		narrow(result.AsFloat16(), dst)
	default:
		panic(fmt.Sprintf("sumTo: unsupported dtype %s", x.DType()))
	}

	return result
}

// sumToKernel runs sequentially: many source elements land on one
// destination element.
func sumToKernel[T number](dst, src []T, srcStrides, dstStrides []int) {
	for i, v := range src {
		dst[computeFlatIndex(i, srcStrides, dstStrides)] += v
	}
}
