package radial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transferfn/grid"
	"github.com/katalvlaran/transferfn/radial"
)

// closed-form references
func j1(x float64) float64 { return math.Sin(x)/(x*x) - math.Cos(x)/x }
func j2(x float64) float64 {
	return (3./(x*x)-1.)*math.Sin(x)/x - 3.*math.Cos(x)/(x*x)
}

func flatTable(t *testing.T, ls []int, xMax, sampling float64) *radial.UniformTable {
	t.Helper()
	tab, err := radial.NewFlatTable(ls, 1e-5, xMax, sampling, 1e-10)
	require.NoError(t, err)
	return tab
}

// TestKernelFor pins the (mode, class) mapping and the windowed fallback.
func TestKernelFor(t *testing.T) {
	cases := []struct {
		m    grid.Mode
		c    grid.TypeClass
		want radial.Kernel
	}{
		{grid.Scalar, grid.ClassT0, radial.ScalarT0},
		{grid.Scalar, grid.ClassT1, radial.ScalarT1},
		{grid.Scalar, grid.ClassT2, radial.ScalarT2},
		{grid.Scalar, grid.ClassE, radial.ScalarE},
		{grid.Scalar, grid.ClassLensCMB, radial.ScalarT0},
		{grid.Scalar, grid.ClassDensity, radial.ScalarT0},
		{grid.Scalar, grid.ClassLensing, radial.ScalarT0},
		{grid.Vector, grid.ClassT1, radial.VectorT1},
		{grid.Vector, grid.ClassT2, radial.VectorT2},
		{grid.Vector, grid.ClassE, radial.VectorE},
		{grid.Vector, grid.ClassB, radial.VectorB},
		{grid.Tensor, grid.ClassT2, radial.TensorT2},
		{grid.Tensor, grid.ClassE, radial.TensorE},
		{grid.Tensor, grid.ClassB, radial.TensorB},
	}
	for _, tc := range cases {
		got, err := radial.KernelFor(tc.m, tc.c)
		require.NoError(t, err, "%s/%s", tc.m, tc.c)
		assert.Equal(t, tc.want, got, "%s/%s", tc.m, tc.c)
	}

	_, err := radial.KernelFor(grid.Tensor, grid.ClassDensity)
	assert.ErrorIs(t, err, radial.ErrUnknownKernel)
}

// TestFlatTable_MatchesClosedForm compares the tabulated j_2 and its
// derivative against the explicit formulas, at off-grid arguments.
func TestFlatTable_MatchesClosedForm(t *testing.T) {
	tab := flatTable(t, []int{2, 5, 10}, 60., 20.)
	assert.Equal(t, 1., tab.Nu())
	assert.Equal(t, 3, tab.LSize())
	assert.Equal(t, 2, tab.L(0))

	for _, x := range []float64{0.7, 3.3, 8.1, 21.7, 45.2} {
		phi, dphi, d2phi, err := tab.Interpolate(0, radial.OrderMid, x)
		require.NoError(t, err)

		assert.InDelta(t, j2(x), phi, 2e-5, "j_2(%g)", x)
		assert.InDelta(t, j1(x)-3./x*j2(x), dphi, 2e-4, "j_2'(%g)", x)

		// the second derivative satisfies the radial ODE
		wantD2 := -2./x*dphi - (1.-6./(x*x))*phi
		assert.InDelta(t, wantD2, d2phi, 2e-3, "j_2''(%g)", x)
	}
}

// TestFlatTable_InterpOrders: the septic interpolant is at least as
// accurate as the cubic one on a coarse table.
func TestFlatTable_InterpOrders(t *testing.T) {
	tab := flatTable(t, []int{2}, 40., 8.)

	var errLow, errHigh float64
	for x := 5.0; x < 35.; x += 0.37 {
		lo, _, _, err := tab.Interpolate(0, radial.OrderLow, x)
		require.NoError(t, err)
		hi, _, _, err := tab.Interpolate(0, radial.OrderHigh, x)
		require.NoError(t, err)
		errLow += math.Abs(lo - j2(x))
		errHigh += math.Abs(hi - j2(x))
	}
	assert.Less(t, errHigh, errLow, "higher order must not be less accurate")
}

// TestFlatTable_FirstNonZero: the quiet region grows with l, and queries
// below the table start return zero.
func TestFlatTable_FirstNonZero(t *testing.T) {
	tab := flatTable(t, []int{2, 20, 100}, 200., 8.)

	x2 := tab.XFirstNonZero(0)
	x20 := tab.XFirstNonZero(1)
	x100 := tab.XFirstNonZero(2)
	assert.Less(t, x2, x20)
	assert.Less(t, x20, x100)
	assert.Greater(t, x100, 50., "j_100 stays negligible far into the quiet region")

	phi, dphi, d2phi, err := tab.Interpolate(2, radial.OrderMid, 1e-7)
	require.NoError(t, err)
	assert.Zero(t, phi)
	assert.Zero(t, dphi)
	assert.Zero(t, d2phi)

	_, _, _, err = tab.Interpolate(2, radial.OrderMid, 1e5)
	assert.ErrorIs(t, err, radial.ErrOutOfTable)
	_, _, _, err = tab.Interpolate(7, radial.OrderMid, 1.)
	assert.ErrorIs(t, err, radial.ErrLIndexRange)
}

// TestCoordinates_Flat: chi = k(tau0-tau), both generalized functions 1/chi.
func TestCoordinates_Flat(t *testing.T) {
	var c radial.Coordinates
	c.Fill(grid.Geometry{K: 0, Sgn: 0}, 0.1, []float64{5000., 1000., 10.})

	require.Equal(t, 3, c.Len())
	assert.InDelta(t, 500., c.Chi[0], 1e-12)
	assert.InDelta(t, 1./500., c.CscK[0], 1e-15)
	assert.Equal(t, c.CscK[1], c.CotK[1])
}

// TestCoordinates_Closed checks the trigonometric generalization.
func TestCoordinates_Closed(t *testing.T) {
	K := 1e-6
	sqrtK := math.Sqrt(K)
	k := 0.05

	var c radial.Coordinates
	c.Fill(grid.Geometry{K: K, Sgn: 1}, k, []float64{3000.})

	chi := sqrtK * 3000.
	assert.InDelta(t, chi, c.Chi[0], 1e-12)
	assert.InDelta(t, sqrtK/k/math.Sin(chi), c.CscK[0], 1e-15)
	assert.InDelta(t, sqrtK/k*math.Cos(chi)/math.Sin(chi), c.CotK[0], 1e-15)
}

// TestEvaluate_ScalarFlat: in flat space the T0 kernel is j_l itself, T1
// its derivative, and the quadrupole the ODE combination.
func TestEvaluate_ScalarFlat(t *testing.T) {
	tab := flatTable(t, []int{2}, 60., 20.)
	geom := grid.Geometry{K: 0, Sgn: 0}
	k := 0.01

	var c radial.Coordinates
	t0mt := []float64{4000., 2000., 700.}
	c.Fill(geom, k, t0mt)

	args := radial.Args{
		Table: tab, Geom: geom, K: k, Q: k,
		LIndex: 0, L: 2, Coords: &c, Order: radial.OrderMid,
	}

	out := make([]float64, 3)
	require.NoError(t, radial.Evaluate(radial.ScalarT0, args, out))
	for i, tm := range t0mt {
		assert.InDelta(t, j2(k*tm), out[i], 2e-5, "T0 at point %d", i)
	}

	require.NoError(t, radial.Evaluate(radial.ScalarT1, args, out))
	for i, tm := range t0mt {
		x := k * tm
		assert.InDelta(t, j1(x)-3./x*j2(x), out[i], 2e-4, "T1 at point %d", i)
	}

	// flat quadrupole: (3 j_l'' + j_l)/2
	require.NoError(t, radial.Evaluate(radial.ScalarT2, args, out))
	for i, tm := range t0mt {
		x := k * tm
		d1 := j1(x) - 3./x*j2(x)
		d2v := -2./x*d1 - (1.-6./(x*x))*j2(x)
		assert.InDelta(t, (3.*d2v+j2(x))/2., out[i], 2e-3, "T2 at point %d", i)
	}
}

// TestEvaluate_PolarizationFactor: the flat E kernel at l=2 is
// sqrt(3/8*4*3*2*1) = 3 times csc^2 j_2.
func TestEvaluate_PolarizationFactor(t *testing.T) {
	tab := flatTable(t, []int{2}, 60., 20.)
	geom := grid.Geometry{K: 0, Sgn: 0}
	k := 0.01

	var c radial.Coordinates
	c.Fill(geom, k, []float64{3000.})

	args := radial.Args{
		Table: tab, Geom: geom, K: k, Q: k,
		LIndex: 0, L: 2, Coords: &c, Order: radial.OrderMid,
	}

	out := make([]float64, 1)
	require.NoError(t, radial.Evaluate(radial.ScalarE, args, out))

	x := k * 3000.
	assert.InDelta(t, 3./(x*x)*j2(x), out[0], 1e-7)
}

// TestEvaluate_BufferCheck rejects short output buffers.
func TestEvaluate_BufferCheck(t *testing.T) {
	tab := flatTable(t, []int{2}, 20., 8.)
	var c radial.Coordinates
	c.Fill(grid.Geometry{}, 0.01, []float64{1000., 500.})

	args := radial.Args{Table: tab, K: 0.01, Q: 0.01, L: 2, Coords: &c}
	err := radial.Evaluate(radial.ScalarT0, args, make([]float64, 1))
	assert.ErrorIs(t, err, radial.ErrShapeMismatch)
}

// closedTable tabulates an analytic family on [xMin, pi/2] as a single
// closed-space multipole, with exact derivative rows.
func closedTable(t *testing.T, nu float64, l int, f, df, d2f func(float64) float64) *radial.UniformTable {
	t.Helper()
	const n = 1601
	xMin := 1e-3
	dx := (math.Pi/2. - xMin) / float64(n-1)
	phi := [][]float64{make([]float64, n)}
	dphi := [][]float64{make([]float64, n)}
	d2 := [][]float64{make([]float64, n)}
	for j := 0; j < n; j++ {
		x := xMin + float64(j)*dx
		phi[0][j] = f(x)
		dphi[0][j] = df(x)
		d2[0][j] = d2f(x)
	}
	tab, err := radial.NewUniformTable(nu, []int{l}, xMin, dx, phi, dphi, d2, 1e-12, true)
	require.NoError(t, err)
	return tab
}

// TestUniformTable_ClosedFold: beyond pi/2 a closed table reflects its
// argument; the value carries the parity of the family while the odd
// derivatives pick up one extra chain-rule sign per fold.
func TestUniformTable_ClosedFold(t *testing.T) {
	negSin := func(x float64) float64 { return -math.Sin(x) }
	negCos := func(x float64) float64 { return -math.Cos(x) }

	// nu-l odd: even extension, sin(pi-x) = sin(x)
	even := closedTable(t, 4., 3, math.Sin, math.Cos, negSin)
	// nu-l even: odd extension, cos(pi-x) = -cos(x)
	odd := closedTable(t, 4., 2, math.Cos, negSin, negCos)

	// below the fold both tables read straight off the grid
	phi, dphi, d2phi, err := even.Interpolate(0, radial.OrderMid, 1.2)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(1.2), phi, 1e-9)
	assert.InDelta(t, math.Cos(1.2), dphi, 1e-9)
	assert.InDelta(t, -math.Sin(1.2), d2phi, 1e-6)

	phi, dphi, d2phi, err = even.Interpolate(0, radial.OrderMid, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(2.), phi, 1e-9)
	assert.InDelta(t, math.Cos(2.), dphi, 1e-9, "the folded first derivative keeps its analytic sign")
	assert.InDelta(t, -math.Sin(2.), d2phi, 1e-6)

	phi, dphi, d2phi, err = odd.Interpolate(0, radial.OrderMid, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(2.), phi, 1e-9)
	assert.InDelta(t, -math.Sin(2.), dphi, 1e-9)
	assert.InDelta(t, -math.Cos(2.), d2phi, 1e-6)
}
