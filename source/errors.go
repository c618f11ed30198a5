package source

import "errors"

var (
	// ErrEmptyTable - a source table with no k or no tau samples.
	ErrEmptyTable = errors.New("source: empty table")

	// ErrShapeMismatch - table dimensions disagree with the grids.
	ErrShapeMismatch = errors.New("source: table shape mismatch")

	// ErrNotIncreasing - a coordinate grid is not strictly increasing.
	ErrNotIncreasing = errors.New("source: grid not strictly increasing")

	// ErrOutOfRange - an interpolation query outside the tabulated range.
	ErrOutOfRange = errors.New("source: query out of tabulated range")

	// ErrZeroNorm - a selection function integrated to a non-positive norm.
	ErrZeroNorm = errors.New("source: selection normalizes to zero")

	// ErrBadSampling - a requested sampling size below the minimum.
	ErrBadSampling = errors.New("source: sampling size too small")
)
