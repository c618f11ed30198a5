package transfer

import (
	"fmt"

	"github.com/katalvlaran/transferfn/grid"
	"github.com/katalvlaran/transferfn/radial"
	"github.com/katalvlaran/transferfn/source"
)

// typePlan holds everything about one transfer type that does not depend
// on the wavenumber: its radial kernel, the truncated multipole count,
// the time sampling with trapezoidal weights, and (for windowed types)
// the normalized selection function.
type typePlan struct {
	class grid.TypeClass
	bin   int
	kern  radial.Kernel
	role  grid.SourceRole

	// lSize is the usable prefix of the multipole grid for this type.
	lSize int

	// t0mt is the descending (tau0-tau) sampling, w its trapezoidal
	// weights. cut counts leading upstream samples excluded from the
	// support (CMB lensing drops everything before recombination).
	t0mt []float64
	w    []float64
	cut  int

	dirac bool
	zMean float64

	// selection of the windowed types; galaxy lensing keeps the selection
	// on its own sampling, distinct from the lens times in t0mt.
	sel     []float64
	selT0mt []float64
	selW    []float64
}

// preparePlans builds the per-type plans of one mode from the upstream
// time sampling.
func (e *Engine) preparePlans(c grid.Correspondence, tau []float64) ([]typePlan, error) {
	tau0 := e.bg.ConformalAge()

	plans := make([]typePlan, 0, c.Len())
	for _, tt := range c.Types {
		kern, err := radial.KernelFor(c.Mode, tt.Class)
		if err != nil {
			return nil, err
		}

		lSize, err := e.lgrid.TruncatedLen(tt.LMax)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", tt.Class, err)
		}

		p := typePlan{
			class: tt.Class,
			bin:   tt.Bin,
			kern:  kern,
			role:  tt.Class.Role(),
			lSize: lSize,
		}

		switch tt.Class {
		case grid.ClassLensCMB:
			p.cut = source.CutBeforeRecombination(tau, e.thermo.TauRec)
			p.t0mt = upstreamT0mt(tau0, tau[p.cut:])

		case grid.ClassDensity:
			if err = e.planDensity(&p, tau0); err != nil {
				return nil, err
			}

		case grid.ClassLensing:
			if err = e.planLensing(&p, tau0); err != nil {
				return nil, err
			}

		default:
			p.t0mt = upstreamT0mt(tau0, tau)
		}

		p.w = source.TrapezoidWeights(p.t0mt)
		plans = append(plans, p)
	}

	return plans, nil
}

// planDensity samples one number-count bin over its selection support.
func (e *Engine) planDensity(p *typePlan, tau0 float64) error {
	w := e.windows[p.bin]
	p.zMean = w.Mean

	tauMin, tauMean, tauMax, err := source.SelectionTimes(e.bg, w, e.prec.SelectionCutAtSigma, e.prec.SelectionTophatEdge)
	if err != nil {
		return fmt.Errorf("density bin %d: %w", p.bin, err)
	}
	p.dirac = tauMin == tauMax

	size := source.DensityTauSize(tau0, tauMin, tauMean, tauMax, p.zMean,
		e.prec.SelectionSampling, e.prec.SelectionSamplingBessel, e.prec.LSwitchLimberDensity)

	if p.t0mt, err = source.SelectionSampling(tau0, tauMin, tauMean, tauMax, size); err != nil {
		return fmt.Errorf("density bin %d: %w", p.bin, err)
	}

	wTrapz := source.TrapezoidWeights(p.t0mt)
	if p.sel, err = source.ComputeSelection(e.bg, w, e.prec.SelectionTophatEdge, p.t0mt, wTrapz); err != nil {
		return fmt.Errorf("density bin %d: %w", p.bin, err)
	}

	return nil
}

// planLensing samples one galaxy-lensing bin: the lens times extend from
// the selection region all the way to the observer, while the selection
// itself stays on its own coarser sampling.
func (e *Engine) planLensing(p *typePlan, tau0 float64) error {
	w := e.windows[p.bin]
	p.zMean = w.Mean

	tauMin, tauMean, tauMax, err := source.SelectionTimes(e.bg, w, e.prec.SelectionCutAtSigma, e.prec.SelectionTophatEdge)
	if err != nil {
		return fmt.Errorf("lensing bin %d: %w", p.bin, err)
	}
	p.dirac = tauMin == tauMax

	srcSize := e.prec.SelectionSampling
	if p.dirac {
		srcSize = 1
	}
	if p.selT0mt, err = source.SelectionSampling(tau0, tauMin, tauMean, tauMax, srcSize); err != nil {
		return fmt.Errorf("lensing bin %d: %w", p.bin, err)
	}
	p.selW = source.TrapezoidWeights(p.selT0mt)
	if p.sel, err = source.ComputeSelection(e.bg, w, e.prec.SelectionTophatEdge, p.selT0mt, p.selW); err != nil {
		return fmt.Errorf("lensing bin %d: %w", p.bin, err)
	}

	size := source.LensingTauSize(tau0, tauMin, tauMean, p.zMean,
		e.prec.SelectionSampling, e.prec.SelectionSamplingBessel, e.prec.LSwitchLimberDensity)

	if p.t0mt, err = source.LensingSampling(tau0, tauMin, size); err != nil {
		return fmt.Errorf("lensing bin %d: %w", p.bin, err)
	}

	return nil
}

// useLimber decides between the exact line-of-sight integration and the
// Limber approximation for one (type, l, q): always Limber beyond the
// basis-table reach, and above the per-type multipole switch for the
// broad-kernel scalar types.
func (e *Engine) useLimber(p *typePlan, m grid.Mode, l int, q, qMaxBessel float64) bool {
	if q > qMaxBessel {
		return true
	}
	if m != grid.Scalar {
		return false
	}

	switch p.class {
	case grid.ClassLensCMB:
		return float64(l) > e.prec.LSwitchLimber
	case grid.ClassDensity:
		return !p.dirac && float64(l) >= e.prec.LSwitchLimberDensity*p.zMean
	case grid.ClassLensing:
		return float64(l) >= e.prec.LSwitchLimberDensity*p.zMean
	}

	return false
}

// upstreamT0mt converts an ascending tau sampling into the descending
// (tau0-tau) convention of the projection integrals.
func upstreamT0mt(tau0 float64, tau []float64) []float64 {
	out := make([]float64, len(tau))
	for i, t := range tau {
		out[i] = tau0 - t
	}

	return out
}
