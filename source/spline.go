package source

import (
	"fmt"
	"sort"
)

// boundTol is the relative slack accepted when a query sits on the edge of
// the tabulated k range up to floating-point noise.
const boundTol = 1e-10

// SplineTable - cubic-spline view of an upstream source table along k
//
// Description:
//
//	The table stores S(k, tau) row-wise (one row per tau sample) together
//	with the second derivatives of each row with respect to k. Boundary
//	conditions estimate the endpoint first derivative from a parabola
//	through the three outermost points, so the spline stays accurate next
//	to the edges of the k range. InterpolateK evaluates every tau row at
//	one wavenumber, which is the access pattern of the projection loop.
//
// Errors:
//   - ErrEmptyTable, ErrShapeMismatch, ErrNotIncreasing - construction;
//   - ErrOutOfRange - query outside [k_min, k_max] beyond rounding slack.
type SplineTable struct {
	k    []float64
	rows [][]float64
	d2   [][]float64
}

// NewSplineTable builds the spline tables for all tau rows at once.
// k must be strictly increasing with at least two points; every row must
// have len(k) samples.
func NewSplineTable(k []float64, rows [][]float64) (*SplineTable, error) {
	if len(k) < 2 || len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	for i := 1; i < len(k); i++ {
		if k[i] <= k[i-1] {
			return nil, fmt.Errorf("k[%d]=%g after %g: %w", i, k[i], k[i-1], ErrNotIncreasing)
		}
	}
	for r, row := range rows {
		if len(row) != len(k) {
			return nil, fmt.Errorf("row %d has %d samples, want %d: %w", r, len(row), len(k), ErrShapeMismatch)
		}
	}

	t := &SplineTable{k: k, rows: rows, d2: make([][]float64, len(rows))}
	scratch := make([]float64, len(k))
	for r, row := range rows {
		t.d2[r] = splineSecondDerivs(k, row, scratch)
	}

	return t, nil
}

// InterpolateK fills out with S(k, tau) over all tau rows. len(out) must
// equal the number of rows.
func (t *SplineTable) InterpolateK(k float64, out []float64) error {
	if len(out) != len(t.rows) {
		return fmt.Errorf("out has %d slots, want %d: %w", len(out), len(t.rows), ErrShapeMismatch)
	}

	n := len(t.k)
	if k < t.k[0] || k > t.k[n-1] {
		// Tolerate edge queries that drifted by floating-point rounding.
		switch {
		case k >= t.k[0]*(1.-boundTol) && k < t.k[0]:
			k = t.k[0]
		case k <= t.k[n-1]*(1.+boundTol) && k > t.k[n-1]:
			k = t.k[n-1]
		default:
			return fmt.Errorf("k=%g outside [%g, %g]: %w", k, t.k[0], t.k[n-1], ErrOutOfRange)
		}
	}

	hi := sort.SearchFloat64s(t.k, k)
	if hi == 0 {
		hi = 1
	}
	lo := hi - 1

	h := t.k[hi] - t.k[lo]
	a := (t.k[hi] - k) / h
	b := (k - t.k[lo]) / h
	ca := (a*a*a - a) * h * h / 6.
	cb := (b*b*b - b) * h * h / 6.

	for r := range t.rows {
		out[r] = a*t.rows[r][lo] + b*t.rows[r][hi] + ca*t.d2[r][lo] + cb*t.d2[r][hi]
	}

	return nil
}

// Rows returns the number of tau rows.
func (t *SplineTable) Rows() int { return len(t.rows) }

// splineSecondDerivs solves the tridiagonal spline system for one row,
// with endpoint first derivatives estimated from the outermost parabola.
// scratch must have len(x) capacity; it is overwritten.
func splineSecondDerivs(x, y, scratch []float64) []float64 {
	n := len(x)
	d2 := make([]float64, n)
	if n == 2 {
		return d2 // linear segment, second derivative zero
	}

	u := scratch[:n]

	yp0 := parabolaSlope(x[0], x[0], y[0], x[1], y[1], x[2], y[2])
	ypn := parabolaSlope(x[n-1], x[n-1], y[n-1], x[n-2], y[n-2], x[n-3], y[n-3])

	d2[0] = -0.5
	u[0] = (3. / (x[1] - x[0])) * ((y[1]-y[0])/(x[1]-x[0]) - yp0)

	for i := 1; i < n-1; i++ {
		sig := (x[i] - x[i-1]) / (x[i+1] - x[i-1])
		p := sig*d2[i-1] + 2.
		d2[i] = (sig - 1.) / p
		u[i] = (y[i+1]-y[i])/(x[i+1]-x[i]) - (y[i]-y[i-1])/(x[i]-x[i-1])
		u[i] = (6.*u[i]/(x[i+1]-x[i-1]) - sig*u[i-1]) / p
	}

	qn := 0.5
	un := (3. / (x[n-1] - x[n-2])) * (ypn - (y[n-1]-y[n-2])/(x[n-1]-x[n-2]))
	d2[n-1] = (un - qn*u[n-2]) / (qn*d2[n-2] + 1.)
	for i := n - 2; i >= 0; i-- {
		d2[i] = d2[i]*d2[i+1] + u[i]
	}

	return d2
}

// parabolaSlope returns the derivative at x of the parabola through the
// three given points.
func parabolaSlope(x, x0, y0, x1, y1, x2, y2 float64) float64 {
	d01 := (y1 - y0) / (x1 - x0)
	d02 := (y2 - y0) / (x2 - x0)
	// second divided difference gives the curvature term
	c := (d02 - d01) / (x2 - x1)

	return d01 + c*(2.*x-x0-x1)
}
