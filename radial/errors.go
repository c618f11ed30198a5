package radial

import "errors"

var (
	// ErrUnknownKernel - no kernel variant exists for the (mode, class) pair.
	ErrUnknownKernel = errors.New("radial: no kernel for this mode and class")

	// ErrBadTable - inconsistent table dimensions or sampling.
	ErrBadTable = errors.New("radial: malformed basis table")

	// ErrLIndexRange - multipole index outside the table.
	ErrLIndexRange = errors.New("radial: multipole index out of table")

	// ErrOutOfTable - interpolation argument beyond the tabulated range.
	ErrOutOfTable = errors.New("radial: argument beyond tabulated range")

	// ErrShapeMismatch - output buffer length disagrees with the coordinates.
	ErrShapeMismatch = errors.New("radial: buffer length mismatch")
)
