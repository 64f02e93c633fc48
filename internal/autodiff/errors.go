package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/tensor"
)

// Errors returned by graph construction and the backward pass. All of them
// indicate a programming error; none is retryable.
var (
	// ErrTypeMismatch: a Node was built from a value that is not an array and
	// cannot be promoted to one, or operands disagree on dtype.
	ErrTypeMismatch = tensor.ErrTypeMismatch

	// ErrInvalidArity: an Operation received the wrong number of values.
	ErrInvalidArity = ops.ErrInvalidArity

	// ErrMissingGradient: the backward pass reached a Function none of whose
	// outputs has a gradient.
	ErrMissingGradient = errors.New("missing gradient")
)
