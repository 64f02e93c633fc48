package cpu

import (
	"github.com/born-ml/gradgraph/internal/tensor"
)

// broadcast maps a flat output index to the flat indices of two broadcast
// operands.
type broadcast struct {
	outStrides []int
	aStrides   []int
	bStrides   []int
}

func newBroadcast(aShape, bShape, outShape tensor.Shape) *broadcast {
	return &broadcast{
		outStrides: outShape.ComputeStrides(),
		aStrides:   computeBroadcastStridesForShape(aShape, outShape),
		bStrides:   computeBroadcastStridesForShape(bShape, outShape),
	}
}

func (bc *broadcast) index(outIdx int) (int, int) {
	return computeFlatIndex(outIdx, bc.outStrides, bc.aStrides),
		computeFlatIndex(outIdx, bc.outStrides, bc.bStrides)
}

// computeBroadcastStridesForShape returns, for each output dimension, the
// stride to use in the input. Broadcast and padded dimensions get stride 0.
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim

	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex converts a flat output index to a flat input index.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}
