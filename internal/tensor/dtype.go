// Package tensor provides the numeric array type consumed by the autodiff engine.
//
// The engine never computes on numbers itself. Everything it needs from an
// array (shape introspection, zero/one-filled constructors, scalar promotion)
// lives here, and elementwise arithmetic is delegated to a Backend.
package tensor

import "github.com/x448/float16"

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Float16
	Int32
	Int64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float16:
		return 2
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// IsFloat reports whether the data type is a floating point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64 || dt == Float16
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Float16:
		return "float16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// dataTypeOf maps a Go scalar to its DataType. Untyped Go ints map to Int64,
// matching NumPy's default integer on 64-bit platforms.
func dataTypeOf(v any) (DataType, bool) {
	switch v.(type) {
	case float32:
		return Float32, true
	case float64:
		return Float64, true
	case float16.Float16:
		return Float16, true
	case int32:
		return Int32, true
	case int, int64:
		return Int64, true
	default:
		return 0, false
	}
}
