// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array type the gradgraph autodiff engine
// computes with.
//
// # Overview
//
// A RawTensor is a dense, row-major array with a runtime dtype. It is always
// array-shaped: bare Go scalars are promoted to zero-dimensional arrays.
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
//	s, _ := tensor.FromScalar(2.0) // shape [], float64
//	ones := tensor.OnesLike(x)
//
// # Supported Data Types
//
//   - float32, float64, float16 (floating-point)
//   - int32, int64 (signed integers)
//
// # Broadcasting
//
// Backends follow NumPy broadcasting rules:
//
//	(3, 1) + (3, 4) → (3, 4)
//	()     + (3, 4) → (3, 4)
package tensor
