package transfer

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/katalvlaran/transferfn/grid"
)

// Table - the computed transfer functions Delta_l(q)
//
// Description:
//
//	One flat slice per mode, indexed ((ic*T + itt)*L + il)*Q + iq with T
//	the number of transfer types, L the multipole-grid length and Q the
//	wavenumber count; a fixed (ic, itt, il) row is therefore contiguous
//	in q, which is both the fill order and the interpolation axis.
//
//	Compute seals the table before returning it; a sealed table is
//	read-only and safe for concurrent queries.
//
// Errors:
//   - ErrTableIndex  - any index outside its range;
//   - ErrTableSealed - a write after sealing;
//   - ErrQueryRange  - interpolation outside [Q[0], Q[last]].
type Table struct {
	corr []grid.Correspondence
	ls   []int
	qs   []float64

	numIC []int
	data  [][]float64

	sealed bool
}

func newTable(corr []grid.Correspondence, ls []int, qs []float64, numIC []int) *Table {
	t := &Table{
		corr:  corr,
		ls:    ls,
		qs:    qs,
		numIC: numIC,
		data:  make([][]float64, len(corr)),
	}
	for im, c := range corr {
		t.data[im] = make([]float64, numIC[im]*c.Len()*len(ls)*len(qs))
	}

	return t
}

func (t *Table) seal() { t.sealed = true }

// Modes returns the per-mode transfer-type enumeration.
func (t *Table) Modes() []grid.Correspondence { return t.corr }

// L returns the multipole grid shared by all modes.
func (t *Table) L() []int { return t.ls }

// Q returns the wavenumber grid shared by all modes.
func (t *Table) Q() []float64 { return t.qs }

// NumIC returns the number of initial conditions of mode index im.
func (t *Table) NumIC(im int) int { return t.numIC[im] }

func (t *Table) offset(im, ic, itt, il, iq int) (int, error) {
	if im < 0 || im >= len(t.corr) {
		return 0, fmt.Errorf("mode index %d of %d: %w", im, len(t.corr), ErrTableIndex)
	}
	if ic < 0 || ic >= t.numIC[im] {
		return 0, fmt.Errorf("ic %d of %d: %w", ic, t.numIC[im], ErrTableIndex)
	}
	if itt < 0 || itt >= t.corr[im].Len() {
		return 0, fmt.Errorf("type %d of %d: %w", itt, t.corr[im].Len(), ErrTableIndex)
	}
	if il < 0 || il >= len(t.ls) {
		return 0, fmt.Errorf("l index %d of %d: %w", il, len(t.ls), ErrTableIndex)
	}
	if iq < 0 || iq >= len(t.qs) {
		return 0, fmt.Errorf("q index %d of %d: %w", iq, len(t.qs), ErrTableIndex)
	}

	return ((ic*t.corr[im].Len()+itt)*len(t.ls)+il)*len(t.qs) + iq, nil
}

func (t *Table) set(im, ic, itt, il, iq int, v float64) error {
	if t.sealed {
		return ErrTableSealed
	}
	off, err := t.offset(im, ic, itt, il, iq)
	if err != nil {
		return err
	}
	t.data[im][off] = v

	return nil
}

// At returns the stored value at one grid node.
func (t *Table) At(im, ic, itt, il, iq int) (float64, error) {
	off, err := t.offset(im, ic, itt, il, iq)
	if err != nil {
		return 0, err
	}

	return t.data[im][off], nil
}

// Row returns the contiguous q-row of one (ic, type, multipole) triple.
// The returned slice aliases the table; callers must not modify it.
func (t *Table) Row(im, ic, itt, il int) ([]float64, error) {
	off, err := t.offset(im, ic, itt, il, 0)
	if err != nil {
		return nil, err
	}

	return t.data[im][off : off+len(t.qs)], nil
}

// InterpolateQ evaluates Delta_l at an off-grid wavenumber by monotone
// piecewise-cubic interpolation along the q-row. Monotone interpolation
// keeps the sharply peaked transfer functions free of overshoot between
// nodes.
func (t *Table) InterpolateQ(im, ic, itt, il int, q float64) (float64, error) {
	row, err := t.Row(im, ic, itt, il)
	if err != nil {
		return 0, err
	}
	if q < t.qs[0] || q > t.qs[len(t.qs)-1] {
		return 0, fmt.Errorf("q=%g outside [%g, %g]: %w", q, t.qs[0], t.qs[len(t.qs)-1], ErrQueryRange)
	}

	var fb interp.FritschButland
	if err = fb.Fit(t.qs, row); err != nil {
		return 0, fmt.Errorf("fit over %d wavenumbers: %w", len(t.qs), err)
	}

	return fb.Predict(q), nil
}
