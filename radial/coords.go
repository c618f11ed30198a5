package radial

import (
	"math"

	"github.com/katalvlaran/transferfn/grid"
)

// Coordinates holds the per-time geometric factors of one (q, type) pair:
// the radial argument chi and the generalized cosecant and cotangent that
// weight the polarization kernels. Slices are reused across fills.
type Coordinates struct {
	Chi  []float64
	CscK []float64
	CotK []float64
}

// Fill computes the coordinates for one wavenumber over a (tau0-tau)
// sampling. In flat space chi = k (tau0-tau) and both trigonometric
// generalizations reduce to 1/chi; in curved space chi = sqrt|K| (tau0-tau)
// with cscK = sqrt|K|/(k sinK chi) and cotK = cscK cosK chi.
func (c *Coordinates) Fill(geom grid.Geometry, k float64, tau0MinusTau []float64) {
	n := len(tau0MinusTau)
	c.Chi = growTo(c.Chi, n)
	c.CscK = growTo(c.CscK, n)
	c.CotK = growTo(c.CotK, n)

	switch geom.Sgn {
	case 0:
		for i, t0mt := range tau0MinusTau {
			chi := k * t0mt
			c.Chi[i] = chi
			c.CscK[i] = 1. / chi
			c.CotK[i] = 1. / chi
		}

	case 1:
		sqrtK := geom.SqrtAbsK()
		for i, t0mt := range tau0MinusTau {
			chi := sqrtK * t0mt
			c.Chi[i] = chi
			c.CscK[i] = sqrtK / k / math.Sin(chi)
			c.CotK[i] = c.CscK[i] * math.Cos(chi)
		}

	case -1:
		sqrtK := geom.SqrtAbsK()
		for i, t0mt := range tau0MinusTau {
			chi := sqrtK * t0mt
			c.Chi[i] = chi
			c.CscK[i] = sqrtK / k / math.Sinh(chi)
			c.CotK[i] = c.CscK[i] * math.Cosh(chi)
		}
	}
}

// Len returns the number of filled points.
func (c *Coordinates) Len() int { return len(c.Chi) }

func growTo(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}

	return s[:n]
}
