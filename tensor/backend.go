// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/gradgraph/internal/tensor"

// Backend defines the elementwise arithmetic the autodiff engine delegates
// to.
//
// Implementations:
//   - backend/cpu: Pure Go, parallel for large tensors
//
// Example:
//
//	import "github.com/born-ml/gradgraph/backend/cpu"
//
//	backend := cpu.New()
//	y := backend.Add(a, b)
type Backend = tensor.Backend
