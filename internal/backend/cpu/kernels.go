package cpu

import (
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	"github.com/born-ml/gradgraph/internal/parallel"
)

type number interface {
	constraints.Float | constraints.Integer
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opMul
)

func apply[T number](op binaryOp, x, y T) T {
	switch op {
	case opAdd:
		return x + y
	case opMul:
		return x * y
	default:
		panic("unknown binary op")
	}
}

// binaryKernel computes dst = a (op) b. A nil bc means a, b and dst share a
// shape and can be walked with a single flat index.
func binaryKernel[T number](dst, a, b []T, bc *broadcast, op binaryOp, cfg parallel.Config) {
	if bc == nil {
		parallel.For(len(dst), cfg, func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = apply(op, a[i], b[i])
			}
		})
		return
	}

	parallel.For(len(dst), cfg, func(start, end int) {
		for i := start; i < end; i++ {
			aIdx, bIdx := bc.index(i)
			dst[i] = apply(op, a[aIdx], b[bIdx])
		}
	})
}

func scaleKernel[T number](dst, src []T, s T, cfg parallel.Config) {
	parallel.For(len(dst), cfg, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] * s
		}
	})
}

// float16 is computed in float32 and rounded back on store.

func widen(src []float16.Float16) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = v.Float32()
	}
	return out
}

func narrow(dst []float16.Float16, src []float32) {
	for i, v := range src {
		dst[i] = float16.Fromfloat32(v)
	}
}
