package radial

import (
	"fmt"
	"math"
)

// InterpOrder selects the Hermite interpolation order used when reading a
// basis table. Higher orders use higher tabulated derivatives and permit
// sparser sampling of the table.
type InterpOrder int

const (
	// OrderLow - cubic, from Phi and dPhi at the bracketing nodes.
	OrderLow InterpOrder = iota

	// OrderMid - quintic, additionally matching d2Phi at the nodes.
	OrderMid

	// OrderHigh - septic, additionally matching the differenced d3Phi.
	OrderHigh
)

// BasisTable is a uniformly sampled family of radial basis functions
// Phi^nu_l(x), one row per tabulated multipole. Implementations must be
// safe for concurrent readers.
type BasisTable interface {
	// Nu returns the generalized frequency of the family (1 in flat space).
	Nu() float64

	// LSize returns the number of tabulated multipoles.
	LSize() int

	// L returns the multipole of row il.
	L(il int) int

	// XMax returns the largest tabulated argument.
	XMax() float64

	// XFirstNonZero returns the argument below which Phi of row il is
	// negligible; integration may start there.
	XFirstNonZero(il int) float64

	// Interpolate evaluates row il at x, returning Phi, dPhi and d2Phi.
	Interpolate(il int, order InterpOrder, x float64) (phi, dphi, d2phi float64, err error)
}

// UniformTable - Hermite-interpolated basis table on a uniform x grid
//
// Description:
//
//	Rows hold Phi and dPhi samples per multipole; d2Phi is either supplied
//	or differenced from dPhi, and the third derivative (needed by
//	OrderHigh) is always differenced from d2Phi. Queries below the first
//	grid point return zero, where the basis functions are negligible for
//	l >= 2. Queries above the range fail with ErrOutOfTable, except for
//	closed-space tables, which fold x about pi/2 using the parity of the
//	basis function.
//
// Errors:
//   - ErrBadTable    - inconsistent construction input;
//   - ErrLIndexRange - row index out of range;
//   - ErrOutOfTable  - query beyond XMax on a non-closed table.
type UniformTable struct {
	nu   float64
	ls   []int
	xMin float64
	dx   float64
	n    int

	phi  [][]float64
	dphi [][]float64
	d2   [][]float64
	d3   [][]float64

	firstNonZero []float64

	// closed-space tables cover [xMin, pi/2] and fold beyond it
	closed bool
}

// NewUniformTable builds a table from per-multipole samples on the grid
// x_j = xMin + j*dx. d2 may be nil, in which case it is differenced from
// dphi. phiMinAbs sets the negligibility threshold of XFirstNonZero.
// closed marks a positively curved family, enabling reflection about pi/2.
func NewUniformTable(nu float64, ls []int, xMin, dx float64, phi, dphi, d2 [][]float64, phiMinAbs float64, closed bool) (*UniformTable, error) {
	if len(ls) == 0 || len(phi) != len(ls) || len(dphi) != len(ls) {
		return nil, fmt.Errorf("%d multipoles, %d phi rows, %d dphi rows: %w", len(ls), len(phi), len(dphi), ErrBadTable)
	}
	if d2 != nil && len(d2) != len(ls) {
		return nil, fmt.Errorf("%d d2 rows for %d multipoles: %w", len(d2), len(ls), ErrBadTable)
	}
	if dx <= 0 || len(phi[0]) < 2 {
		return nil, fmt.Errorf("dx=%g with %d samples: %w", dx, len(phi[0]), ErrBadTable)
	}

	n := len(phi[0])
	t := &UniformTable{
		nu: nu, ls: append([]int(nil), ls...),
		xMin: xMin, dx: dx, n: n,
		phi: phi, dphi: dphi, d2: d2,
		firstNonZero: make([]float64, len(ls)),
		closed:       closed,
	}

	for il := range ls {
		if len(phi[il]) != n || len(dphi[il]) != n || (d2 != nil && len(d2[il]) != n) {
			return nil, fmt.Errorf("row %d sample count mismatch: %w", il, ErrBadTable)
		}
	}

	if t.d2 == nil {
		t.d2 = differenceRows(t.dphi, dx)
	}
	t.d3 = differenceRows(t.d2, dx)

	for il := range ls {
		j := 0
		for j < n-1 && math.Abs(phi[il][j]) < phiMinAbs {
			j++
		}
		// last sample still below threshold, so no signal is truncated
		if j > 0 {
			j--
		}
		t.firstNonZero[il] = xMin + float64(j)*dx
	}

	return t, nil
}

// Nu returns the generalized frequency.
func (t *UniformTable) Nu() float64 { return t.nu }

// LSize returns the number of rows.
func (t *UniformTable) LSize() int { return len(t.ls) }

// L returns the multipole of row il.
func (t *UniformTable) L(il int) int { return t.ls[il] }

// XMax returns the last grid point.
func (t *UniformTable) XMax() float64 { return t.xMin + float64(t.n-1)*t.dx }

// XFirstNonZero returns the start of the non-negligible region of row il.
func (t *UniformTable) XFirstNonZero(il int) float64 { return t.firstNonZero[il] }

// Interpolate evaluates row il at x by two-node Hermite interpolation.
func (t *UniformTable) Interpolate(il int, order InterpOrder, x float64) (phi, dphi, d2phi float64, err error) {
	if il < 0 || il >= len(t.ls) {
		return 0, 0, 0, fmt.Errorf("row %d of %d: %w", il, len(t.ls), ErrLIndexRange)
	}

	sign, dsign := 1., 1.
	if t.closed && x > math.Pi/2. {
		// fold about pi/2; the reflected function picks up the parity of
		// the family, and the chain rule flips odd derivatives once more
		x = math.Pi - x
		if (int(t.nu+0.5)-t.ls[il])%2 == 0 {
			sign = -1.
		}
		dsign = -sign
	}

	if x < t.xMin {
		return 0, 0, 0, nil
	}
	if x > t.XMax() {
		return 0, 0, 0, fmt.Errorf("x=%g beyond %g: %w", x, t.XMax(), ErrOutOfTable)
	}

	j := int((x - t.xMin) / t.dx)
	if j >= t.n-1 {
		j = t.n - 2
	}
	u := (x - t.xMin - float64(j)*t.dx) / t.dx

	phi = hermite(order, u, t.dx,
		t.phi[il][j], t.dphi[il][j], t.d2[il][j], t.d3[il][j],
		t.phi[il][j+1], t.dphi[il][j+1], t.d2[il][j+1], t.d3[il][j+1])

	// derivative rows interpolate through their own derivative chains,
	// capped at the quintic since no fourth derivative is tabulated
	dOrder := order
	if dOrder > OrderMid {
		dOrder = OrderMid
	}
	dphi = hermite(dOrder, u, t.dx,
		t.dphi[il][j], t.d2[il][j], t.d3[il][j], 0,
		t.dphi[il][j+1], t.d2[il][j+1], t.d3[il][j+1], 0)

	d2phi = hermite(OrderLow, u, t.dx,
		t.d2[il][j], t.d3[il][j], 0, 0,
		t.d2[il][j+1], t.d3[il][j+1], 0, 0)

	return sign * phi, dsign * dphi, sign * d2phi, nil
}

// hermite evaluates the two-node Hermite interpolant of the requested
// order at relative position u in a cell of width h. f/d/s/r are the
// value and first three derivatives at the left node, g/e/t2/r2 at the
// right one; unused higher derivatives are ignored.
func hermite(order InterpOrder, u, h, f, d, s, r, g, e, t2, r2 float64) float64 {
	u2 := u * u
	u3 := u2 * u

	switch order {
	case OrderLow:
		h00 := 2.*u3 - 3.*u2 + 1.
		h10 := u3 - 2.*u2 + u
		h01 := -2.*u3 + 3.*u2
		h11 := u3 - u2

		return f*h00 + h*d*h10 + g*h01 + h*e*h11

	case OrderMid:
		u4 := u3 * u
		u5 := u4 * u
		h00 := 1. - 10.*u3 + 15.*u4 - 6.*u5
		h10 := u - 6.*u3 + 8.*u4 - 3.*u5
		h20 := 0.5*u2 - 1.5*u3 + 1.5*u4 - 0.5*u5
		h01 := 10.*u3 - 15.*u4 + 6.*u5
		h11 := -4.*u3 + 7.*u4 - 3.*u5
		h21 := 0.5*u3 - u4 + 0.5*u5

		return f*h00 + h*d*h10 + h*h*s*h20 + g*h01 + h*e*h11 + h*h*t2*h21

	default: // OrderHigh
		u4 := u3 * u
		u5 := u4 * u
		u6 := u5 * u
		u7 := u6 * u
		h00 := 1. - 35.*u4 + 84.*u5 - 70.*u6 + 20.*u7
		h10 := u - 20.*u4 + 45.*u5 - 36.*u6 + 10.*u7
		h20 := 0.5*u2 - 5.*u4 + 10.*u5 - 7.5*u6 + 2.*u7
		h30 := u3/6. - 2.*u4/3. + u5 - 2.*u6/3. + u7/6.
		h01 := 35.*u4 - 84.*u5 + 70.*u6 - 20.*u7
		h11 := -15.*u4 + 39.*u5 - 34.*u6 + 10.*u7
		h21 := 2.5*u4 - 7.*u5 + 6.5*u6 - 2.*u7
		h31 := -u4/6. + u5/2. - u6/2. + u7/6.

		h2 := h * h
		h3 := h2 * h

		return f*h00 + h*d*h10 + h2*s*h20 + h3*r*h30 +
			g*h01 + h*e*h11 + h2*t2*h21 + h3*r2*h31
	}
}

// differenceRows returns centered finite differences of each row, with
// one-sided stencils at the edges.
func differenceRows(rows [][]float64, dx float64) [][]float64 {
	out := make([][]float64, len(rows))
	for r, row := range rows {
		n := len(row)
		d := make([]float64, n)
		if n >= 2 {
			d[0] = (row[1] - row[0]) / dx
			d[n-1] = (row[n-1] - row[n-2]) / dx
		}
		for j := 1; j < n-1; j++ {
			d[j] = (row[j+1] - row[j-1]) / (2. * dx)
		}
		out[r] = d
	}

	return out
}
