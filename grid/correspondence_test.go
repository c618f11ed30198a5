package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transferfn/grid"
)

// TestCorrespond_ScalarFull exercises the full scalar enumeration order with
// two redshift bins.
func TestCorrespond_ScalarFull(t *testing.T) {
	obs := grid.Observables{
		Temperature:   true,
		Polarization:  true,
		CMBLensing:    true,
		Density:       true,
		GalaxyLensing: true,
		Bins:          2,
		LMaxCMB:       2500,
		LMaxLSS:       300,
	}

	cs, err := grid.Correspond(obs, []grid.Mode{grid.Scalar})
	require.NoError(t, err)
	require.Len(t, cs, 1)

	c := cs[0]
	assert.Equal(t, grid.Scalar, c.Mode)

	want := []grid.TransferType{
		{Class: grid.ClassT2, Bin: -1, LMax: 2500},
		{Class: grid.ClassE, Bin: -1, LMax: 2500},
		{Class: grid.ClassT0, Bin: -1, LMax: 2500},
		{Class: grid.ClassT1, Bin: -1, LMax: 2500},
		{Class: grid.ClassLensCMB, Bin: -1, LMax: 2500},
		{Class: grid.ClassDensity, Bin: 0, LMax: 300},
		{Class: grid.ClassDensity, Bin: 1, LMax: 300},
		{Class: grid.ClassLensing, Bin: 0, LMax: 300},
		{Class: grid.ClassLensing, Bin: 1, LMax: 300},
	}
	assert.Equal(t, want, c.Types)
}

// TestCorrespond_TensorPolarization checks the tensor enumeration: T2, E, B
// at the non-scalar budget.
func TestCorrespond_TensorPolarization(t *testing.T) {
	obs := grid.Observables{
		Temperature:   true,
		Polarization:  true,
		LMaxCMB:       2500,
		LMaxNonScalar: 500,
	}

	cs, err := grid.Correspond(obs, []grid.Mode{grid.Tensor})
	require.NoError(t, err)
	require.Len(t, cs, 1)

	want := []grid.TransferType{
		{Class: grid.ClassT2, Bin: -1, LMax: 500},
		{Class: grid.ClassE, Bin: -1, LMax: 500},
		{Class: grid.ClassB, Bin: -1, LMax: 500},
	}
	assert.Equal(t, want, cs[0].Types)
}

// TestCorrespond_Vector checks the vector enumeration: T2, E, T1, B.
func TestCorrespond_Vector(t *testing.T) {
	obs := grid.Observables{
		Temperature:   true,
		Polarization:  true,
		LMaxNonScalar: 500,
	}

	cs, err := grid.Correspond(obs, []grid.Mode{grid.Vector})
	require.NoError(t, err)

	want := []grid.TransferType{
		{Class: grid.ClassT2, Bin: -1, LMax: 500},
		{Class: grid.ClassE, Bin: -1, LMax: 500},
		{Class: grid.ClassT1, Bin: -1, LMax: 500},
		{Class: grid.ClassB, Bin: -1, LMax: 500},
	}
	assert.Equal(t, want, cs[0].Types)
}

// TestCorrespond_Errors covers empty requests.
func TestCorrespond_Errors(t *testing.T) {
	_, err := grid.Correspond(grid.Observables{Temperature: true}, nil)
	assert.ErrorIs(t, err, grid.ErrNoModes)

	_, err = grid.Correspond(grid.Observables{}, []grid.Mode{grid.Scalar})
	assert.ErrorIs(t, err, grid.ErrNoObservables)

	// Density-only request leaves the tensor mode with no types.
	obs := grid.Observables{Density: true, Bins: 1, LMaxLSS: 300}
	_, err = grid.Correspond(obs, []grid.Mode{grid.Tensor})
	assert.ErrorIs(t, err, grid.ErrNoObservables)
}

// TestObservables_LMaxFor verifies the budget routing per mode and class.
func TestObservables_LMaxFor(t *testing.T) {
	obs := grid.Observables{LMaxCMB: 2500, LMaxLSS: 300, LMaxNonScalar: 500}

	assert.Equal(t, 2500, obs.LMaxFor(grid.Scalar, grid.ClassT0))
	assert.Equal(t, 300, obs.LMaxFor(grid.Scalar, grid.ClassDensity))
	assert.Equal(t, 300, obs.LMaxFor(grid.Scalar, grid.ClassLensing))
	assert.Equal(t, 500, obs.LMaxFor(grid.Tensor, grid.ClassB))
	assert.Equal(t, 500, obs.LMaxFor(grid.Vector, grid.ClassT1))
}

// TestMode_Spin pins the spin of each mode.
func TestMode_Spin(t *testing.T) {
	assert.Equal(t, 0, grid.Scalar.Spin())
	assert.Equal(t, 1, grid.Vector.Spin())
	assert.Equal(t, 2, grid.Tensor.Spin())
}
