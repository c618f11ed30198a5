package grid

import "errors"

var (
	// ErrDegenerateGrid indicates a grid ended up with fewer than two points.
	ErrDegenerateGrid = errors.New("grid: degenerate grid (fewer than 2 points)")

	// ErrZeroStep indicates the step formula evaluated to exactly zero,
	// which would stall grid construction.
	ErrZeroStep = errors.New("grid: step size evaluated to zero")

	// ErrMultipoleRange indicates a type requested a maximum multipole
	// beyond the precomputed multipole grid.
	ErrMultipoleRange = errors.New("grid: requested l_max exceeds multipole grid range")

	// ErrExtrapolation indicates a derived k(q) falls outside the upstream
	// source's k bounds, so interpolation would extrapolate.
	ErrExtrapolation = errors.New("grid: k(q) outside upstream source bounds")

	// ErrNoModes indicates an empty mode list was supplied.
	ErrNoModes = errors.New("grid: at least one mode is required")

	// ErrBadBounds indicates non-positive or inverted wavenumber bounds.
	ErrBadBounds = errors.New("grid: invalid wavenumber bounds")

	// ErrNoObservables indicates that no observable class was requested, so
	// there is nothing to enumerate.
	ErrNoObservables = errors.New("grid: no observable class requested")
)
