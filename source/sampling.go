package source

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/katalvlaran/transferfn/window"
)

// TrapezoidWeights returns the midpoint-averaged trapezoidal weights of a
// descending (tau0-tau) sampling: w[i] = x[i-1] - x[i+1] in the bulk, the
// half-intervals at the edges. The single-point (Dirac) case gets weight 2
// so that the conventional factor 1/2 of TrapezoidIntegral cancels.
func TrapezoidWeights(tau0MinusTau []float64) []float64 {
	n := len(tau0MinusTau)
	w := make([]float64, n)
	if n == 1 {
		w[0] = 2.
		return w
	}

	w[0] = tau0MinusTau[0] - tau0MinusTau[1]
	for i := 1; i < n-1; i++ {
		w[i] = tau0MinusTau[i-1] - tau0MinusTau[i+1]
	}
	w[n-1] = tau0MinusTau[n-2] - tau0MinusTau[n-1]

	return w
}

// TrapezoidIntegral evaluates 0.5 * sum(f[i]*w[i]) with the weights from
// TrapezoidWeights.
func TrapezoidIntegral(f, w []float64) float64 {
	s := 0.
	for i := range f {
		s += f[i] * w[i]
	}

	return 0.5 * s
}

// SelectionTimes maps the redshift support of a window onto conformal
// time: tauMin at the far edge (largest z), tauMax at the near edge, and
// tauMean at the central redshift. For a Dirac window all three coincide.
func SelectionTimes(bg Background, w window.Window, cutAtSigma, tophatEdge float64) (tauMin, tauMean, tauMax float64, err error) {
	zNear, zFar := w.Bounds(cutAtSigma, tophatEdge)

	if tauMin, err = bg.TimeOfRedshift(zFar); err != nil {
		return 0, 0, 0, fmt.Errorf("far edge z=%g: %w", zFar, err)
	}
	if tauMax, err = bg.TimeOfRedshift(zNear); err != nil {
		return 0, 0, 0, fmt.Errorf("near edge z=%g: %w", zNear, err)
	}
	if tauMean, err = bg.TimeOfRedshift(math.Max(w.Mean, 0.)); err != nil {
		return 0, 0, 0, fmt.Errorf("mean z=%g: %w", w.Mean, err)
	}

	return tauMin, tauMean, tauMax, nil
}

// SelectionSampling returns size values of (tau0-tau), evenly spaced in
// tau over [tauMin, tauMax] and stored in descending order. The Dirac case
// (tauMin == tauMax) requires size 1.
func SelectionSampling(tau0, tauMin, tauMean, tauMax float64, size int) ([]float64, error) {
	if tauMin == tauMax {
		if size != 1 {
			return nil, fmt.Errorf("dirac selection needs size 1, got %d: %w", size, ErrBadSampling)
		}
		return []float64{tau0 - tauMean}, nil
	}
	if size < 2 {
		return nil, fmt.Errorf("size=%d: %w", size, ErrBadSampling)
	}

	out := make([]float64, size)
	for i := range out {
		out[i] = tau0 - tauMin - float64(i)/float64(size-1)*(tauMax-tauMin)
	}

	return out, nil
}

// LensingSampling returns size values of (tau0-tau) spanning the full
// lensing support, from the far edge of the selection all the way to the
// observer, in descending order with an exact zero at the end.
func LensingSampling(tau0, tauMin float64, size int) ([]float64, error) {
	if size < 2 {
		return nil, fmt.Errorf("size=%d: %w", size, ErrBadSampling)
	}

	out := make([]float64, size)
	for i := range out {
		out[i] = float64(size-1-i) / float64(size-1) * (tau0 - tauMin)
	}

	return out, nil
}

// ComputeSelection evaluates the normalized selection W(tau) on the given
// time sampling: the analytic shape at z(tau), times H(tau) for the
// dz-to-dtau change of variable, normalized so that the trapezoidal
// integral over this very sampling equals one.
func ComputeSelection(bg Background, w window.Window, tophatEdge float64, tau0MinusTau, wTrapz []float64) ([]float64, error) {
	tau0 := bg.ConformalAge()

	sel := make([]float64, len(tau0MinusTau))
	for i, t0mt := range tau0MinusTau {
		p, err := bg.At(tau0 - t0mt)
		if err != nil {
			return nil, fmt.Errorf("background at tau=%g: %w", tau0-t0mt, err)
		}
		sel[i] = w.Evaluate(p.Redshift(), tophatEdge) * p.Hubble
	}

	norm := TrapezoidIntegral(sel, wTrapz)
	if !(norm > 0) {
		return nil, fmt.Errorf("norm=%g: %w", norm, ErrZeroNorm)
	}
	floats.Scale(1./norm, sel)

	return sel, nil
}

// Resample evaluates a source profile, tabulated on the ascending tau
// grid, at the times tau0 - tau0MinusTau[i] by piecewise-linear
// interpolation. Queries are clamped to the tabulated range.
func Resample(tau, values []float64, tau0 float64, tau0MinusTau []float64) ([]float64, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(tau, values); err != nil {
		return nil, fmt.Errorf("fit over %d tau samples: %w", len(tau), err)
	}

	out := make([]float64, len(tau0MinusTau))
	for i, t0mt := range tau0MinusTau {
		t := tau0 - t0mt
		if t < tau[0] {
			t = tau[0]
		}
		if t > tau[len(tau)-1] {
			t = tau[len(tau)-1]
		}
		out[i] = pl.Predict(t)
	}

	return out, nil
}

// CutBeforeRecombination returns the number of leading tau samples at or
// before tauRec; the remaining suffix is the CMB-lensing support.
func CutBeforeRecombination(tau []float64, tauRec float64) int {
	i := 0
	for i < len(tau) && tau[i] <= tauRec {
		i++
	}

	return i
}

// DensityTauSize returns the time-sampling size of one density bin: the
// base selection sampling, refined so that the fastest relevant radial
// oscillation (the one at the Limber switch multipole) is resolved with
// selBessel points per period.
func DensityTauSize(tau0, tauMin, tauMean, tauMax, zMean float64, selSampling, selBessel int, lSwitchLimberDensity float64) int {
	if tauMin == tauMax {
		return 1
	}

	size := selSampling
	lLimber := lSwitchLimberDensity * zMean
	if lLimber > 0 {
		oscillations := int((tauMax - tauMin) / ((tau0 - tauMean) / lLimber))
		if n := oscillations * selBessel; n > size {
			size = n
		}
	}

	return size
}

// LensingTauSize is the analog for one galaxy-lensing bin, whose support
// extends from the selection region all the way to the observer.
func LensingTauSize(tau0, tauMin, tauMean, zMean float64, selSampling, selBessel int, lSwitchLimberDensity float64) int {
	size := selSampling
	lLimber := lSwitchLimberDensity * zMean
	if lLimber > 0 {
		oscillations := int((tau0 - tauMin) / ((tau0 - tauMean) / 2. / lLimber))
		if n := oscillations * selBessel; n > size {
			size = n
		}
	}

	return size
}
