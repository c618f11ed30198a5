package transfer

import "errors"

var (
	// ErrNilBackground - no background cosmology supplied.
	ErrNilBackground = errors.New("transfer: nil background")

	// ErrBadWindows - window count disagrees with the requested bins.
	ErrBadWindows = errors.New("transfer: window count mismatch")

	// ErrNoTableBuilder - curved geometry requested without a basis-table
	// builder for the exact low-q regime.
	ErrNoTableBuilder = errors.New("transfer: curved geometry needs a table builder")

	// ErrMissingSource - a required (mode, ic, role) source table is absent.
	ErrMissingSource = errors.New("transfer: missing source table")

	// ErrOvertoneDrift - a closed-space wavenumber is not an integer
	// overtone within tolerance.
	ErrOvertoneDrift = errors.New("transfer: closed-space overtone drift")

	// ErrTableIndex - out-of-range access into the transfer table.
	ErrTableIndex = errors.New("transfer: table index out of range")

	// ErrTableSealed - write into a table already handed out.
	ErrTableSealed = errors.New("transfer: table is sealed")

	// ErrQueryRange - interpolation query outside the tabulated q range.
	ErrQueryRange = errors.New("transfer: query outside tabulated range")

	// ErrNotIncreasing - an input coordinate list is not strictly increasing.
	ErrNotIncreasing = errors.New("transfer: list not strictly increasing")
)
