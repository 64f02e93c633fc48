package tensor

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Shape lists the dimensions of an array, outermost first. The empty Shape
// is a zero-dimensional array and holds exactly one element.
type Shape []int

// NumElements returns the product of the dimensions (1 for a zero-dim shape).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate rejects non-positive dimensions.
func (s Shape) Validate() error {
	if i := slices.IndexFunc(s, func(d int) bool { return d <= 0 }); i >= 0 {
		return errors.Errorf("shape %v: dimension %d is %d, must be positive", s, i, s[i])
	}
	return nil
}

// Equal reports whether both shapes have the same dimensions. A nil Shape and
// an empty one are equal.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns an independent copy; it is never nil.
func (s Shape) Clone() Shape {
	return append(Shape{}, s...)
}

// ComputeStrides returns row-major strides in elements.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// BroadcastShapes returns the shape two operands broadcast to, and whether
// either operand has to be broadcast to reach it.
//
// Shapes are aligned on their trailing dimensions and the shorter one is
// padded with leading 1s. Each aligned pair must be equal or contain a 1:
//
//	(3, 1) with (3, 5) -> (3, 5), true
//	()     with (3, 5) -> (3, 5), true
//	(3, 5) with (3, 5) -> (3, 5), false
//	(3, 4) with (3, 5) -> error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	n := max(len(a), len(b))
	pa, pb := padLeft(a, n), padLeft(b, n)

	out := make(Shape, n)
	for i := range out {
		switch da, db := pa[i], pb[i]; {
		case da == db || db == 1:
			out[i] = da
		case da == 1:
			out[i] = db
		default:
			return nil, false, errors.Errorf("cannot broadcast %v with %v: dimension %d is %d vs %d", a, b, i, da, db)
		}
	}
	return out, !slices.Equal(a, out) || !slices.Equal(b, out), nil
}

// padLeft returns s prefixed with 1s up to n dimensions.
func padLeft(s Shape, n int) Shape {
	p := make(Shape, n-len(s), n)
	for i := range p {
		p[i] = 1
	}
	return append(p, s...)
}
