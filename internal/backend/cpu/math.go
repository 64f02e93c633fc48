package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/gradgraph/internal/parallel"
	"github.com/born-ml/gradgraph/internal/tensor"
)

// Exp computes element-wise exponential: exp(x). Only float dtypes are
// supported.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("exp: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.For(len(dst), cpu.par, func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(math.Exp(float64(src[i])))
			}
		})
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.For(len(dst), cpu.par, func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = math.Exp(src[i])
			}
		})
	case tensor.Float16:
		src := widen(x.AsFloat16())
		for i, v := range src {
			src[i] = float32(math.Exp(float64(v)))
		}
		narrow(result.AsFloat16(), src)
	default:
		panic(fmt.Sprintf("exp: unsupported dtype %s (only float types supported)", x.DType()))
	}

	return result
}
