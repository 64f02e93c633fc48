package tensor

import (
	"math"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// ErrTypeMismatch is returned when a value cannot be turned into an array,
// or when two arrays that must agree on dtype do not.
var ErrTypeMismatch = errors.New("type mismatch")

// Element is the set of Go element types a RawTensor can be built from.
type Element interface {
	~float32 | ~float64 | ~int32 | ~int64 | float16.Float16
}

// IsScalar reports whether v is a bare Go numeric scalar (not an array).
func IsScalar(v any) bool {
	_, ok := dataTypeOf(v)
	return ok
}

// FromScalar promotes a bare scalar to a zero-dimensional array of the
// scalar's own dtype (float64 for untyped float constants, int64 for int).
func FromScalar(v any) (*RawTensor, error) {
	dtype, ok := dataTypeOf(v)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "%T is not a numeric scalar", v)
	}
	return FromScalarAs(v, dtype)
}

// FromScalarAs promotes a bare scalar to a zero-dimensional array of the
// given dtype. The value must be representable in dtype: a fractional or
// out-of-range value for an integer dtype, or a finite value that overflows a
// float dtype, is ErrTypeMismatch.
func FromScalarAs(v any, dtype DataType) (*RawTensor, error) {
	if dtype == Int64 {
		switch x := v.(type) {
		case int64:
			return FromSlice([]int64{x}, Shape{})
		case int:
			return FromSlice([]int64{int64(x)}, Shape{})
		}
	}
	f, ok := scalarFloat64(v)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "%T is not a numeric scalar", v)
	}
	if !representable(f, dtype) {
		return nil, errors.Wrapf(ErrTypeMismatch, "%v (%T) is not representable as %s", v, v, dtype)
	}
	return Full(Shape{}, dtype, f)
}

func representable(f float64, dtype DataType) bool {
	switch dtype {
	case Int32:
		return f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32
	case Int64:
		return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
	case Float32:
		return math.IsInf(f, 0) || !math.IsInf(float64(float32(f)), 0)
	case Float16:
		return math.IsInf(f, 0) || !math.IsInf(float64(float16.Fromfloat32(float32(f)).Float32()), 0)
	}
	return true
}

// AsArray coerces v into a RawTensor: a *RawTensor is returned as is, a bare
// scalar is promoted to a zero-dimensional array, and a Go slice of a
// supported element type becomes a 1-D array. Anything else is a
// ErrTypeMismatch.
func AsArray(v any) (*RawTensor, error) {
	switch x := v.(type) {
	case *RawTensor:
		if x == nil {
			return nil, errors.Wrap(ErrTypeMismatch, "nil tensor")
		}
		return x, nil
	case []float32:
		return FromSlice(x, Shape{len(x)})
	case []float64:
		return FromSlice(x, Shape{len(x)})
	case []float16.Float16:
		return FromSlice(x, Shape{len(x)})
	case []int32:
		return FromSlice(x, Shape{len(x)})
	case []int64:
		return FromSlice(x, Shape{len(x)})
	}
	if IsScalar(v) {
		return FromScalar(v)
	}
	return nil, errors.Wrapf(ErrTypeMismatch, "cannot build an array from %T", v)
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Element](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	dtype, ok := dataTypeOf(any(dummy))
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "unsupported element type %T", dummy)
	}

	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}

	switch src := any(data).(type) {
	case []float32:
		copy(raw.AsFloat32(), src)
	case []float64:
		copy(raw.AsFloat64(), src)
	case []float16.Float16:
		copy(raw.AsFloat16(), src)
	case []int32:
		copy(raw.AsInt32(), src)
	case []int64:
		copy(raw.AsInt64(), src)
	}
	return raw, nil
}

// Full creates a tensor of the given shape and dtype filled with value.
func Full(shape Shape, dtype DataType, value float64) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	fill(raw, value)
	return raw, nil
}

// ZerosLike returns a zero-filled tensor with the shape, dtype and device of t.
func ZerosLike(t *RawTensor) *RawTensor {
	raw, err := NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(err) // t's shape was already validated
	}
	return raw
}

// OnesLike returns a one-filled tensor with the shape, dtype and device of t.
func OnesLike(t *RawTensor) *RawTensor {
	raw := ZerosLike(t)
	fill(raw, 1)
	return raw
}

func fill(raw *RawTensor, value float64) {
	switch raw.DType() {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = value
		}
	case Float16:
		h := float16.Fromfloat32(float32(value))
		data := raw.AsFloat16()
		for i := range data {
			data[i] = h
		}
	case Int32:
		data := raw.AsInt32()
		for i := range data {
			data[i] = int32(value)
		}
	case Int64:
		data := raw.AsInt64()
		for i := range data {
			data[i] = int64(value)
		}
	}
}

func scalarFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case float16.Float16:
		return float64(x.Float32()), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
