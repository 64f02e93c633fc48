// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/gradgraph/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), NDim(), DType(), Device()
//   - Zero-copy typed views via AsFloat32(), AsInt64(), etc.
//   - Deep copies via Clone()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32() // Type-safe access
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Element is the set of Go element types a RawTensor can be built from.
type Element = tensor.Element

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Float16 = tensor.Float16
	Int32   = tensor.Int32
	Int64   = tensor.Int64
)

// CPU is the only device.
const CPU = tensor.CPU

// ErrTypeMismatch is returned when a value cannot be turned into an array.
var ErrTypeMismatch = tensor.ErrTypeMismatch

// NewRaw creates a zero-filled RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice (copied).
func FromSlice[T Element](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromScalar promotes a bare scalar to a zero-dimensional array.
func FromScalar(v any) (*RawTensor, error) {
	return tensor.FromScalar(v)
}

// IsScalar reports whether v is a bare Go numeric scalar.
func IsScalar(v any) bool {
	return tensor.IsScalar(v)
}

// AsArray coerces a RawTensor, scalar or 1-D slice into a RawTensor.
func AsArray(v any) (*RawTensor, error) {
	return tensor.AsArray(v)
}

// Full creates a tensor filled with value.
func Full(shape Shape, dtype DataType, value float64) (*RawTensor, error) {
	return tensor.Full(shape, dtype, value)
}

// ZerosLike returns a zero-filled tensor shaped like t.
func ZerosLike(t *RawTensor) *RawTensor {
	return tensor.ZerosLike(t)
}

// OnesLike returns a one-filled tensor shaped like t.
func OnesLike(t *RawTensor) *RawTensor {
	return tensor.OnesLike(t)
}

// Equal reports whether a and b hold the same elements.
func Equal(a, b *RawTensor) bool {
	return tensor.Equal(a, b)
}

// AllClose compares element-wise within tolerances, like numpy.allclose.
func AllClose(a, b *RawTensor, rtol, atol float64) bool {
	return tensor.AllClose(a, b, rtol, atol)
}
