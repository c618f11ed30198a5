package grid

import (
	"fmt"
	"math"
)

// MultipoleGrid - mixed logarithmic/linear sampling of integer multipoles
//
// Description:
//
//	The grid starts at l=2 and advances with a step that is initially
//	logarithmic, step = max(int(l*(r^a - 1)), 1), where r is Config.LLogStep
//	and a the angular-rescaling exponent tied to curvature. Once the
//	logarithmic step would exceed the linear clamp LLinStep*a, the grid
//	continues with that linear step up to lMax. The final point is forced
//	to equal lMax exactly.
//
// Invariants:
//   - strictly increasing integers, first element 2, last element lMax;
//   - per-type truncated lengths never exceed the full length.
//
// Errors:
//   - ErrDegenerateGrid   - lMax < 2.
//   - ErrMultipoleRange   - a type's lMax exceeds the grid maximum
//     (reported by TruncatedLen).
type MultipoleGrid struct {
	// L is the ordered multipole list. Read-only after construction.
	L []int

	rescaling float64
}

// Multipoles builds the multipole grid for the requested observables.
// lMax is the maximum over all requested observable classes; rescaling is
// the curvature-dependent angular rescaling factor (1 in flat space).
func Multipoles(cfg Config, obs Observables, modes []Mode, rescaling float64) (*MultipoleGrid, error) {
	if len(modes) == 0 {
		return nil, ErrNoModes
	}

	lMax := obs.lMax(modes)
	if lMax < 2 {
		return nil, fmt.Errorf("multipole grid with l_max=%d: %w", lMax, ErrDegenerateGrid)
	}

	// Logarithmic phase: step grows with l until it reaches the linear clamp.
	logRatio := math.Pow(cfg.LLogStep, rescaling) - 1.
	linStep := int(float64(cfg.LLinStep) * rescaling)
	if linStep < 1 {
		linStep = 1
	}

	ls := []int{2}
	increment := logStepFor(ls[0], logRatio)

	for ls[len(ls)-1]+increment < lMax && increment < linStep {
		ls = append(ls, ls[len(ls)-1]+increment)
		increment = logStepFor(ls[len(ls)-1], logRatio)
	}

	// Linear phase up to lMax.
	for ls[len(ls)-1]+linStep <= lMax {
		ls = append(ls, ls[len(ls)-1]+linStep)
	}

	// Force the last value to lMax exactly.
	if ls[len(ls)-1] != lMax {
		ls = append(ls, lMax)
	}

	return &MultipoleGrid{L: ls, rescaling: rescaling}, nil
}

// logStepFor computes the logarithmic step at multipole l, never below 1.
func logStepFor(l int, logRatio float64) int {
	step := int(float64(l) * logRatio)
	if step < 1 {
		return 1
	}

	return step
}

// Len returns the number of grid points.
func (g *MultipoleGrid) Len() int { return len(g.L) }

// Max returns the largest multipole on the grid.
func (g *MultipoleGrid) Max() int { return g.L[len(g.L)-1] }

// TruncatedLen returns the usable prefix length for a type whose own
// maximum multipole is lMax: the smallest prefix whose last value reaches
// lMax, extended by up to two extra points for boundary-safe interpolation,
// capped at the full grid length.
func (g *MultipoleGrid) TruncatedLen(lMax int) (int, error) {
	if lMax > g.Max() {
		return 0, fmt.Errorf("type needs l_max=%d but grid ends at %d: %w",
			lMax, g.Max(), ErrMultipoleRange)
	}

	i := 0
	for g.L[i] < lMax {
		i++
	}
	size := i + 1

	// Two safety points for interpolation margins.
	if size < len(g.L) {
		size++
	}
	if size < len(g.L) {
		size++
	}

	return size, nil
}
