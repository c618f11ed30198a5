package transfer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transferfn/grid"
	"github.com/katalvlaran/transferfn/radial"
	"github.com/katalvlaran/transferfn/source"
)

// TestParabolaFit: exact on a quadratic, including both derivatives.
func TestParabolaFit(t *testing.T) {
	f := func(x float64) float64 { return 2.*x*x - x + 3. }

	s, ds, dds := parabolaFit(1., 2.5, 4., 3.1, f(1.), f(2.5), f(4.))
	assert.InDelta(t, f(3.1), s, 1e-12)
	assert.InDelta(t, 4.*3.1-1., ds, 1e-12)
	assert.InDelta(t, 4., dds, 1e-12)
}

// TestLimberFirstOrder_ConstantProduct: when S*(tau0-tau) is constant the
// interpolation is exact and the result reduces to the closed form.
func TestLimberFirstOrder_ConstantProduct(t *testing.T) {
	const c = 0.7
	t0mt := []float64{10., 8., 6., 4., 2.}
	src := make([]float64, len(t0mt))
	for i, x := range t0mt {
		src[i] = c / x
	}

	l, k := 2, 0.5 // peak at (l+0.5)/k = 5, inside the support
	got := limberFirstOrder(l, k, t0mt, src)
	want := math.Sqrt(math.Pi/5.) * c / 2.5
	assert.InDelta(t, want, got, 1e-12)
}

// TestLimberFirstOrder_OutsideSupport: a peak beyond either end of the
// sampling gives a vanishing transfer function.
func TestLimberFirstOrder_OutsideSupport(t *testing.T) {
	t0mt := []float64{10., 8., 6., 4., 2.}
	src := []float64{1., 1., 1., 1., 1.}

	assert.Zero(t, limberFirstOrder(2, 0.1, t0mt, src), "peak at 25, past the far edge")
	assert.Zero(t, limberFirstOrder(2, 10., t0mt, src), "peak at 0.25, past the near edge")
	assert.Zero(t, LimberSecondOrder(2, 0.1, t0mt, src))
}

// TestLimberSecondOrder_Linear: a linear source is reproduced exactly by
// the parabola, pinning the derivative terms of the second-order formula.
func TestLimberSecondOrder_Linear(t *testing.T) {
	a, b := 0.3, 0.05
	t0mt := []float64{10., 8., 6., 4., 2.}
	src := make([]float64, len(t0mt))
	for i, x := range t0mt {
		src[i] = a + b*x
	}

	l, k := 2, 0.5
	lf := float64(l)
	xL := (lf + 0.5) / k
	twoL1 := 2.*lf + 1.

	want := math.Sqrt(math.Pi/twoL1) / k *
		((1.-1.5/(twoL1*twoL1))*(a+b*xL) + b/k/twoL1)
	assert.InDelta(t, want, LimberSecondOrder(l, k, t0mt, src), 1e-12)
}

// TestLimberFirstOrder_ShortSampling: fewer than three samples cannot
// bracket the peak; the approximation vanishes instead of reading past
// the sampling.
func TestLimberFirstOrder_ShortSampling(t *testing.T) {
	t0mt := []float64{5., 1.}
	src := []float64{1., 1.}

	assert.Zero(t, limberFirstOrder(2, 1., t0mt, src))
	assert.Zero(t, LimberSecondOrder(2, 1., t0mt, src))
	assert.Zero(t, limberFirstOrder(2, 1., t0mt[:1], src[:1]))
}

// TestLimberFirstOrder_MatchesExactAtLargeMultipole: on a broad smooth
// source at a high multipole the exact line-of-sight convolution and the
// Limber approximation agree to the percent level.
func TestLimberFirstOrder_MatchesExactAtLargeMultipole(t *testing.T) {
	const (
		l     = 100
		x0    = 5000.
		sigma = 1500.
	)
	k := (float64(l) + 0.5) / x0 // peak of the projection kernel at x0

	tab, err := radial.NewFlatTable([]int{l}, 1., k*9900.*1.01, 12., 1e-10)
	require.NoError(t, err)

	const n = 1200
	t0mt := make([]float64, n)
	src := make([]float64, n)
	for i := range t0mt {
		x := 9900. - float64(i)*9800./float64(n-1)
		t0mt[i] = x
		d := (x - x0) / sigma
		src[i] = math.Exp(-0.5 * d * d)
	}
	w := source.TrapezoidWeights(t0mt)

	geom := grid.Geometry{}
	var c radial.Coordinates
	c.Fill(geom, k, t0mt)

	args := radial.Args{
		Table: tab, Geom: geom, K: k, Q: k,
		LIndex: 0, L: l, Coords: &c, Order: radial.OrderMid,
	}
	exact, err := integrateExact(radial.ScalarT0, args, t0mt, w, src, false, 0., make([]float64, n))
	require.NoError(t, err)

	limber := limberFirstOrder(l, k, t0mt, src)
	require.NotZero(t, limber)
	assert.InEpsilon(t, exact, limber, 1e-2)
}
