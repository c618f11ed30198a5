package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transferfn/source"
)

// TestSplineTable_ReproducesQuadratic: a cubic spline with estimated
// endpoint derivatives is exact on quadratic data, including next to the
// boundaries.
func TestSplineTable_ReproducesQuadratic(t *testing.T) {
	k := []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5}
	rows := make([][]float64, 3)
	for r := range rows {
		rows[r] = make([]float64, len(k))
		for i, kk := range k {
			rows[r][i] = float64(r+1) * kk * kk
		}
	}

	tab, err := source.NewSplineTable(k, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Rows())

	out := make([]float64, 3)
	for _, q := range []float64{0.01, 0.015, 0.07, 0.42, 0.5} {
		require.NoError(t, tab.InterpolateK(q, out))
		for r := range out {
			assert.InDelta(t, float64(r+1)*q*q, out[r], 1e-12, "row %d at k=%g", r, q)
		}
	}
}

// TestSplineTable_EdgeTolerance accepts queries that drifted off the
// boundary by rounding, and rejects genuine extrapolation.
func TestSplineTable_EdgeTolerance(t *testing.T) {
	k := []float64{0.1, 0.2, 0.3}
	tab, err := source.NewSplineTable(k, [][]float64{{1, 2, 3}})
	require.NoError(t, err)

	out := make([]float64, 1)
	assert.NoError(t, tab.InterpolateK(0.1*(1.-1e-12), out))
	assert.NoError(t, tab.InterpolateK(0.3*(1.+1e-12), out))
	assert.ErrorIs(t, tab.InterpolateK(0.09, out), source.ErrOutOfRange)
	assert.ErrorIs(t, tab.InterpolateK(0.31, out), source.ErrOutOfRange)
}

// TestSplineTable_Validation covers construction errors.
func TestSplineTable_Validation(t *testing.T) {
	_, err := source.NewSplineTable([]float64{0.1}, [][]float64{{1}})
	assert.ErrorIs(t, err, source.ErrEmptyTable)

	_, err = source.NewSplineTable([]float64{0.1, 0.1, 0.2}, [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, source.ErrNotIncreasing)

	_, err = source.NewSplineTable([]float64{0.1, 0.2, 0.3}, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, source.ErrShapeMismatch)

	tab, err := source.NewSplineTable([]float64{0.1, 0.2}, [][]float64{{1, 2}})
	require.NoError(t, err)
	assert.ErrorIs(t, tab.InterpolateK(0.15, make([]float64, 2)), source.ErrShapeMismatch)

	// two-point table degrades to linear interpolation
	out := make([]float64, 1)
	require.NoError(t, tab.InterpolateK(0.15, out))
	assert.InDelta(t, 1.5, out[0], 1e-14)
}
