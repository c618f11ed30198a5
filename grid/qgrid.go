package grid

import (
	"fmt"
	"math"
)

// hardPointCap bounds the q-grid size; reaching it means the step formula
// stopped making progress.
const hardPointCap = 4_000_000

// WavenumberGrid - smoothly blended geometric-to-linear wavenumber sampling
//
// Description:
//
//	The grid covers [qMin, qMax] with a step that blends from a small
//	logarithmic relative step at low q into a fixed linear step at high q:
//
//	    q_next = q + period*linstep*q / (q + linstep/logstep)
//
//	where period is the typical oscillation period of the radial kernels.
//	Bounds are curvature-dependent: flat space uses the upstream k bounds
//	directly; open space offsets them by the curvature magnitude; closed
//	space forces qMin = 3*sqrt(K) and, below the configured overtone
//	threshold, rounds every q to an exact integer multiple of sqrt(K)
//	(overtone index nu) with a denser logarithmic parameter, then blends
//	back to the flat-like formula over QNumStepTransition points.
//
//	If the loop overshoots qMax, the last point is dropped, not snapped.
//
// Errors:
//   - ErrDegenerateGrid - fewer than 2 points result.
//   - ErrZeroStep       - the step formula evaluated to zero.
//   - ErrBadBounds      - inverted or non-positive bounds.
//   - ErrExtrapolation  - a derived k(q) leaves the upstream k range.
type WavenumberGrid struct {
	// Q is the ordered list of curvature-generalized wavenumbers.
	Q []float64

	// K holds, per mode (parallel to Modes), the flat wavenumbers
	// k = sqrt(q^2 - K*(spin+1)) used to read the upstream source.
	K [][]float64

	// Modes is the mode list the K rows correspond to.
	Modes []Mode

	// FlatApproxIndex is, in curved geometry, the first q index above which
	// the flat-space approximation of the radial kernels is permitted.
	// In flat geometry it equals len(Q).
	FlatApproxIndex int

	geom Geometry
}

// Wavenumbers builds the q grid and the per-mode k lists.
//
//	kMin, kMax  - bounds of the upstream source's own k grid;
//	qPeriod     - oscillation period of the radial kernels,
//	              2*pi/(tau0-tauRec) * rescaling;
//	rescaling   - curvature-dependent angular rescaling factor.
func Wavenumbers(cfg Config, geom Geometry, kMin, kMax float64, modes []Mode, qPeriod, rescaling float64) (*WavenumberGrid, error) {
	if len(modes) == 0 {
		return nil, ErrNoModes
	}
	if !(kMin > 0) || kMax <= kMin {
		return nil, fmt.Errorf("k in [%g, %g]: %w", kMin, kMax, ErrBadBounds)
	}

	var qMin, qMax float64
	sqrtK := geom.SqrtAbsK()

	switch geom.Sgn {
	case 0:
		qMin, qMax = kMin, kMax

	case -1:
		// Open space: q^2 = k^2 + |K|*(spin+1); shrink the window so every
		// mode's k(q) stays inside the upstream bounds.
		if kMin*kMin+geom.K < 0 {
			return nil, fmt.Errorf("curvature |K|=%g exceeds k_min^2: %w", -geom.K, ErrBadBounds)
		}
		qMin = math.Sqrt(kMin*kMin + geom.K)
		qMax = math.Sqrt(kMax*kMax + geom.K)
		for _, m := range modes {
			if m == Vector {
				qMax = math.Min(qMax, math.Sqrt(kMax*kMax+2.*geom.K))
			}
			if m == Tensor {
				qMax = math.Min(qMax, math.Sqrt(kMax*kMax+3.*geom.K))
			}
		}

	case 1:
		// Closed space: quantized overtones nu = q/sqrt(K) >= 3.
		qMin = 3. * sqrtK
		qMax = kMax
	}

	qs, err := buildQList(cfg, geom, qMin, qMax, qPeriod, rescaling)
	if err != nil {
		return nil, err
	}

	g := &WavenumberGrid{
		Q:               qs,
		Modes:           append([]Mode(nil), modes...),
		FlatApproxIndex: len(qs),
		geom:            geom,
	}

	// In curved space, locate the first q beyond which the flat-space
	// approximation of the basis functions becomes valid.
	if geom.Sgn != 0 {
		qApprox := cfg.FlatApproximationNu * sqrtK
		g.FlatApproxIndex = len(qs) - 1
		for i := 0; i < len(qs)-1; i++ {
			if qs[i] > qApprox {
				g.FlatApproxIndex = i
				break
			}
		}
	}

	if err = g.deriveK(kMin, kMax); err != nil {
		return nil, err
	}

	return g, nil
}

// buildQList runs the step recursion from qMin to qMax.
func buildQList(cfg Config, geom Geometry, qMin, qMax, qPeriod, rescaling float64) ([]float64, error) {
	// Curvature-adjusted logarithmic parameters.
	logSpline := cfg.QLogStepSpline / math.Pow(rescaling, cfg.QLogStepOpen)
	logTrapzd := cfg.QLogStepTrapzd

	sqrtK := geom.SqrtAbsK()
	qs := []float64{qMin}

	nu := 3
	lastStep := 0.
	lastIndex := 0

	for qs[len(qs)-1] < qMax {
		if len(qs) >= hardPointCap {
			return nil, fmt.Errorf("q list exceeded %d points: %w", hardPointCap, ErrZeroStep)
		}

		prev := qs[len(qs)-1]
		var q float64

		if geom.Sgn <= 0 {
			q = prev + qPeriod*cfg.QLinStep*prev/(prev+cfg.QLinStep/logSpline)
		} else if nu < int(cfg.FlatApproximationNu) {
			// Quantized regime: denser log parameter, rounded to the next
			// integer overtone.
			q = prev + qPeriod*cfg.QLinStep*prev/(prev+cfg.QLinStep/logTrapzd)
			proposed := int(q / sqrtK)
			if proposed <= nu+1 {
				nu++
			} else {
				nu = proposed
			}
			q = float64(nu) * sqrtK
			lastStep = q - prev
			// the blend fraction is zero at the first point past the
			// threshold, so that point repeats the quantized step
			lastIndex = len(qs) + 1
		} else {
			// Transition regime: blend the last quantized step into the
			// flat-like step over QNumStepTransition points.
			step := qPeriod * cfg.QLinStep * prev / (prev + cfg.QLinStep/logSpline)
			if n := len(qs) - lastIndex; n < cfg.QNumStepTransition {
				frac := float64(n) / float64(cfg.QNumStepTransition)
				q = prev + (1.-frac)*lastStep + frac*step
			} else {
				q = prev + step
			}
		}

		if q <= prev {
			return nil, fmt.Errorf("at q=%g: %w", prev, ErrZeroStep)
		}
		qs = append(qs, q)
	}

	// Drop an overshooting last point rather than snapping it to qMax.
	if qs[len(qs)-1] > qMax {
		qs = qs[:len(qs)-1]
	}
	if len(qs) < 2 {
		return nil, fmt.Errorf("q in [%g, %g]: %w", qMin, qMax, ErrDegenerateGrid)
	}

	return qs, nil
}

// deriveK fills the per-mode flat wavenumbers and enforces the
// no-extrapolation invariant against the upstream k bounds.
func (g *WavenumberGrid) deriveK(kMin, kMax float64) error {
	const tol = 1e-10 // relative slack for floating-point bound equality

	g.K = make([][]float64, len(g.Modes))
	for im, m := range g.Modes {
		ks := make([]float64, len(g.Q))
		if g.geom.Sgn == 0 {
			copy(ks, g.Q)
		} else {
			offset := g.geom.K * float64(m.Spin()+1)
			for i, q := range g.Q {
				ks[i] = math.Sqrt(q*q - offset)
			}
		}

		if ks[0] < kMin*(1.-tol) {
			return fmt.Errorf("mode %s: k_min=%g below upstream %g: %w", m, ks[0], kMin, ErrExtrapolation)
		}
		if ks[len(ks)-1] > kMax*(1.+tol) {
			return fmt.Errorf("mode %s: k_max=%g above upstream %g: %w", m, ks[len(ks)-1], kMax, ErrExtrapolation)
		}
		g.K[im] = ks
	}

	return nil
}

// Len returns the number of q points.
func (g *WavenumberGrid) Len() int { return len(g.Q) }

// ModeK returns the k list of the given mode, or nil if the mode is absent.
func (g *WavenumberGrid) ModeK(m Mode) []float64 {
	for i, mm := range g.Modes {
		if mm == m {
			return g.K[i]
		}
	}

	return nil
}
