package radial

import (
	"fmt"
	"math"

	"github.com/katalvlaran/transferfn/grid"
)

// Args bundles the inputs of one radial-function evaluation: one
// (wavenumber, multipole) pair of one mode, its basis table, and the
// precomputed coordinates along the line of sight.
type Args struct {
	Table BasisTable
	Geom  grid.Geometry

	// K is the flat wavenumber of the mode, Q the generalized one.
	K float64
	Q float64

	// LIndex is the row in the table, L the multipole value.
	LIndex int
	L      int

	Coords *Coordinates

	// FlatApprox evaluates a curved kernel from the flat table, with the
	// turning-point argument rescaling and the WKB amplitude correction.
	FlatApprox bool

	Order InterpOrder
}

// Evaluate fills out[i] with the radial kernel at each coordinate point.
//
// Description:
//
//	Each variant combines Phi, dPhi and d2Phi with curvature prefactors;
//	derivative terms carry one factor of sqrt|K|/k per derivative (unity
//	in flat space). In the flat-approximation regime the table argument
//	is stretched by sqrt(l(l+1))/chi_tp, chi_tp being the turning point
//	of the exact basis function, and the amplitude corrected by
//	(1 - K l(l+1)/q^2)^(-1/12) times a quadratic fit in the distance to
//	the turning point, clipped against the exact sin/sinh ratio.
//
// Errors:
//   - ErrShapeMismatch - out shorter than the coordinates;
//   - ErrUnknownKernel - undefined variant;
//   - ErrOutOfTable, ErrLIndexRange - from table interpolation.
func Evaluate(kern Kernel, a Args, out []float64) error {
	n := a.Coords.Len()
	if len(out) < n {
		return fmt.Errorf("out has %d slots for %d points: %w", len(out), n, ErrShapeMismatch)
	}

	l := float64(a.L)
	k2 := a.K * a.K
	K := a.Geom.K

	sqrtAbsKOverK := 1.
	if a.Geom.Sgn != 0 {
		sqrtAbsKOverK = a.Geom.SqrtAbsK() / a.K
	}
	absKOverK2 := sqrtAbsKOverK * sqrtAbsKOverK

	// argument and amplitude rescaling of the flat-approximation regime
	rescArg := 1.
	rescAmp := 1.
	var nu, chiTp, slope float64
	if a.FlatApprox && a.Geom.Sgn != 0 {
		nu = a.Q / a.Geom.SqrtAbsK()
		ll1 := math.Sqrt(l * (l + 1.))
		if a.Geom.Sgn == 1 {
			chiTp = math.Asin(ll1 / nu)
		} else {
			chiTp = math.Asinh(ll1 / nu)
		}
		rescArg = ll1 / chiTp
		rescAmp = math.Pow(1.-K*l*(l+1.)/(a.Q*a.Q), -1./12.)
		slope = math.Atan(l / nu)
	}

	evalPoint := func(chi float64) (phi, dphi, d2phi, resc float64, err error) {
		x := chi * rescArg
		phi, dphi, d2phi, err = a.Table.Interpolate(a.LIndex, a.Order, x)
		if err != nil {
			return 0, 0, 0, 0, err
		}

		resc = 1.
		if rescAmp != 1. {
			d := slope * (chi - chiTp)
			if a.Geom.Sgn == 1 {
				resc = math.Min(rescAmp*(1.+0.34*d+2.00*d*d), chi/math.Sin(chi))
			} else {
				resc = math.Max(rescAmp*(1.-0.38*d+0.40*d*d), chi/math.Sinh(chi))
			}
		}

		// derivative samples live on the stretched argument
		dphi *= rescArg
		d2phi *= rescArg * rescArg

		return phi, dphi, d2phi, resc, nil
	}

	chi := a.Coords.Chi
	cscK := a.Coords.CscK
	cotK := a.Coords.CotK

	var factor float64
	switch kern {
	case ScalarT0:
		for i := 0; i < n; i++ {
			phi, _, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = phi * resc
		}

	case ScalarT1:
		for i := 0; i < n; i++ {
			_, dphi, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = sqrtAbsKOverK * dphi * resc
		}

	case ScalarT2:
		s2 := math.Sqrt(1. - 3.*K/k2)
		factor = 1. / (2. * s2)
		for i := 0; i < n; i++ {
			phi, _, d2phi, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * (3.*absKOverK2*d2phi + phi) * resc
		}

	case ScalarE:
		s2 := math.Sqrt(1. - 3.*K/k2)
		factor = math.Sqrt(3./8.*(l+2.)*(l+1.)*l*(l-1.)) / s2
		for i := 0; i < n; i++ {
			phi, _, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * cscK[i] * cscK[i] * phi * resc
		}

	case VectorT1:
		s0 := math.Sqrt(1. + K/k2)
		factor = math.Sqrt(0.5*l*(l+1.)) / s0
		for i := 0; i < n; i++ {
			phi, _, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * cscK[i] * phi * resc
		}

	case VectorT2:
		s0 := math.Sqrt(1. + K/k2)
		ssqrt3 := math.Sqrt(1. - 2.*K/k2)
		factor = math.Sqrt(1.5*l*(l+1.)) / s0 / ssqrt3
		for i := 0; i < n; i++ {
			phi, dphi, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * cscK[i] * (sqrtAbsKOverK*dphi - cotK[i]*phi) * resc
		}

	case VectorE:
		s0 := math.Sqrt(1. + K/k2)
		ssqrt3 := math.Sqrt(1. - 2.*K/k2)
		factor = 0.5 * math.Sqrt((l-1.)*(l+2.)) / s0 / ssqrt3
		for i := 0; i < n; i++ {
			phi, dphi, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * cscK[i] * (cotK[i]*phi + sqrtAbsKOverK*dphi) * resc
		}

	case VectorB:
		s0 := math.Sqrt(1. + K/k2)
		ssqrt3 := math.Sqrt(1. - 2.*K/k2)
		si := math.Sqrt(1. + 2.*K/k2)
		factor = 0.5 * math.Sqrt((l-1.)*(l+2.)) * si / s0 / ssqrt3
		for i := 0; i < n; i++ {
			phi, _, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * cscK[i] * phi * resc
		}

	case TensorT2:
		ssqrt2 := math.Sqrt(1. - K/k2)
		si := math.Sqrt(1. + 2.*K/k2)
		factor = math.Sqrt(3./8.*(l+2.)*(l+1.)*l*(l-1.)) / si / ssqrt2
		for i := 0; i < n; i++ {
			phi, _, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * cscK[i] * cscK[i] * phi * resc
		}

	case TensorE:
		ssqrt2 := math.Sqrt(1. - K/k2)
		si := math.Sqrt(1. + 2.*K/k2)
		factor = 0.25 / si / ssqrt2
		for i := 0; i < n; i++ {
			phi, dphi, d2phi, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * (absKOverK2*d2phi +
				4.*cotK[i]*sqrtAbsKOverK*dphi -
				(1.+4.*K/k2-2.*cotK[i]*cotK[i])*phi) * resc
		}

	case TensorB:
		ssqrt2i := math.Sqrt(1. + 3.*K/k2)
		ssqrt2 := math.Sqrt(1. - K/k2)
		si := math.Sqrt(1. + 2.*K/k2)
		factor = 0.5 * ssqrt2i / ssqrt2 / si
		for i := 0; i < n; i++ {
			phi, dphi, _, resc, err := evalPoint(chi[i])
			if err != nil {
				return err
			}
			out[i] = factor * (sqrtAbsKOverK*dphi + 2.*cotK[i]*phi) * resc
		}

	default:
		return fmt.Errorf("%v: %w", kern, ErrUnknownKernel)
	}

	return nil
}
