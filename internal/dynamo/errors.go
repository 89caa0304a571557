package dynamo

import "errors"

// Domain errors for the numeric value types.
var (
	// ErrDimensionMismatch indicates a matrix or vector of the wrong shape.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch, expected 6 degrees of freedom")

	// ErrInvalidVector indicates a vector holding NaN or Inf.
	ErrInvalidVector = errors.New("dynamo: invalid vector (NaN or Inf detected)")
)
