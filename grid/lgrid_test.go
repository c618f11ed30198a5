package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transferfn/grid"
)

// cmbObs returns a minimal CMB-only observable request.
func cmbObs(lMax int) grid.Observables {
	return grid.Observables{Temperature: true, LMaxCMB: lMax}
}

// TestMultipoles_Monotone verifies the grid is strictly increasing and ends
// exactly at the requested maximum.
func TestMultipoles_Monotone(t *testing.T) {
	g, err := grid.Multipoles(grid.DefaultConfig(), cmbObs(2000), []grid.Mode{grid.Scalar}, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 2, g.L[0], "grid must start at l=2")
	assert.Equal(t, 2000, g.Max(), "last point must equal l_max exactly")
	for i := 1; i < g.Len(); i++ {
		assert.Greater(t, g.L[i], g.L[i-1], "multipoles must be strictly increasing")
	}
}

// TestMultipoles_StepClamp checks that the late steps never exceed the
// configured linear clamp.
func TestMultipoles_StepClamp(t *testing.T) {
	cfg := grid.DefaultConfig()
	g, err := grid.Multipoles(cfg, cmbObs(3000), []grid.Mode{grid.Scalar}, 1.0)
	require.NoError(t, err)

	// The forced final point may land closer than one linear step; every
	// other step respects the clamp.
	for i := 1; i < g.Len()-1; i++ {
		assert.LessOrEqual(t, g.L[i]-g.L[i-1], cfg.LLinStep, "step exceeds linear clamp at index %d", i)
	}
}

// TestMultipoles_TinyLMax covers the degenerate small-budget corner.
func TestMultipoles_TinyLMax(t *testing.T) {
	g, err := grid.Multipoles(grid.DefaultConfig(), cmbObs(2), []grid.Mode{grid.Scalar}, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, g.L)

	_, err = grid.Multipoles(grid.DefaultConfig(), cmbObs(1), []grid.Mode{grid.Scalar}, 1.0)
	assert.ErrorIs(t, err, grid.ErrDegenerateGrid)
}

// TestMultipoles_TruncatedLen verifies prefix truncation: monotone in the
// per-type l_max, padded by two points, capped at the full length.
func TestMultipoles_TruncatedLen(t *testing.T) {
	g, err := grid.Multipoles(grid.DefaultConfig(), cmbObs(2000), []grid.Mode{grid.Scalar}, 1.0)
	require.NoError(t, err)

	full, err := g.TruncatedLen(2000)
	require.NoError(t, err)
	assert.Equal(t, g.Len(), full, "full-budget truncation must equal the grid length")

	short, err := g.TruncatedLen(100)
	require.NoError(t, err)
	assert.LessOrEqual(t, short, g.Len())
	assert.GreaterOrEqual(t, g.L[short-1], 100, "truncated prefix must cover the type's l_max")

	longer, err := g.TruncatedLen(500)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, longer, short, "truncated length must be non-decreasing in l_max")

	_, err = g.TruncatedLen(2001)
	assert.ErrorIs(t, err, grid.ErrMultipoleRange)
}
