package transfer

import (
	"math"

	"github.com/katalvlaran/transferfn/radial"
)

// tauMinBessel returns the (tau0-tau) below which the basis function of
// the current multipole is negligible. In the flat-approximation regime
// the quiet region of the exact function is recovered by scaling the flat
// one with the ratio of the turning points.
func tauMinBessel(a radial.Args) float64 {
	xFirst := a.Table.XFirstNonZero(a.LIndex)

	if a.Geom.Sgn == 0 {
		return xFirst / a.K
	}

	sqrtK := a.Geom.SqrtAbsK()
	tmin := xFirst / sqrtK

	if a.FlatApprox {
		ll1 := math.Sqrt(float64(a.L) * (float64(a.L) + 1.))
		var chiTp float64
		if a.Geom.Sgn == 1 {
			chiTp = math.Asin(ll1 / a.Q * sqrtK)
		} else {
			chiTp = math.Asinh(ll1 / a.Q * sqrtK)
		}
		tmin *= chiTp / ll1
	}

	return tmin
}

// integrateExact convolves the source with the radial kernel along the
// line of sight by trapezoidal quadrature.
//
// Description:
//
//	The integration range is trimmed three ways before the convolution:
//	below the quiet region of the basis function, past trailing zeros of
//	the source, and (for late-source-neglected types) past the cut time.
//	The trapezoidal weights already account for a source-side truncation;
//	a basis-side truncation leaves a spurious half-triangle that is
//	subtracted explicitly.
//
//	radialBuf is caller-owned scratch, at least len(t0mt) long.
func integrateExact(kern radial.Kernel, a radial.Args, t0mt, w, src []float64, lateCut bool, t0mtCut float64, radialBuf []float64) (float64, error) {
	tmin := tauMinBessel(a)
	if tmin >= t0mt[0] {
		return 0., nil
	}

	// Dirac selection: the source lives at a single time.
	if len(t0mt) == 1 {
		if err := radial.Evaluate(kern, a, radialBuf[:1]); err != nil {
			return 0, err
		}

		return src[0] * radialBuf[0], nil
	}

	iMax := len(t0mt) - 1
	for t0mt[iMax] < tmin {
		iMax--
	}
	iMaxBessel := iMax

	for src[iMax] == 0. {
		iMax--
		if iMax < 0 {
			return 0., nil
		}
	}

	if lateCut {
		for t0mt[iMax] < t0mtCut {
			iMax--
			if iMax < 0 {
				return 0., nil
			}
		}
	}

	n := iMax + 1
	trimmed := a
	trimmed.Coords = &radial.Coordinates{
		Chi:  a.Coords.Chi[:n],
		CscK: a.Coords.CscK[:n],
		CotK: a.Coords.CotK[:n],
	}
	if err := radial.Evaluate(kern, trimmed, radialBuf[:n]); err != nil {
		return 0, err
	}

	trsf := 0.
	for i := 0; i < n; i++ {
		trsf += src[i] * radialBuf[i] * w[i]
	}
	trsf *= 0.5

	// A source-side truncation is exact with the unmodified weights; a
	// basis-side one leaves a wrong half-triangle at the cut.
	if iMax != len(t0mt)-1 && iMax == iMaxBessel {
		trsf -= 0.5 * (t0mt[iMax+1] - tmin) * radialBuf[iMax] * src[iMax]
	}

	return trsf, nil
}
