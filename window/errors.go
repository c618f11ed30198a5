package window

import "errors"

var (
	// ErrUnknownShape - the Shape value is not one of the defined constants.
	ErrUnknownShape = errors.New("window: unknown selection shape")

	// ErrBadWidth - a non-Dirac window was given a non-positive width.
	ErrBadWidth = errors.New("window: width must be positive")

	// ErrBadMean - the window mean redshift is negative.
	ErrBadMean = errors.New("window: mean redshift must be non-negative")
)
