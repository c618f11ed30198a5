// Package grid: shared value types for modes, geometry and observables.
package grid

import "math"

// Mode identifies the perturbation class being projected. Each mode carries
// a spin that enters the curvature offset between q and k.
type Mode int

const (
	// Scalar perturbations (spin 0): temperature, polarization E, lensing,
	// number counts, cosmic shear.
	Scalar Mode = iota

	// Vector perturbations (spin 1): temperature dipole/quadrupole, E/B.
	Vector

	// Tensor perturbations (spin 2): temperature quadrupole, E/B.
	Tensor
)

// Spin returns the spin offset m of the mode (0, 1 or 2).
func (m Mode) Spin() int {
	switch m {
	case Vector:
		return 1
	case Tensor:
		return 2
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	case Tensor:
		return "tensor"
	}

	return "unknown"
}

// Geometry describes the spatial curvature of the background.
//   - Sgn = 0: flat space, K ignored (treated as zero).
//   - Sgn = +1: closed space, K > 0.
//   - Sgn = -1: open space, K < 0.
type Geometry struct {
	K   float64 // curvature parameter, sign matches Sgn
	Sgn int     // curvature sign: -1, 0 or +1
}

// SqrtAbsK returns sqrt(|K|), or zero in flat space.
func (g Geometry) SqrtAbsK() float64 {
	if g.Sgn == 0 {
		return 0
	}

	return math.Sqrt(float64(g.Sgn) * g.K)
}

// TypeClass names the observable family of a transfer type. It determines
// the upstream source role, the radial-kernel variant and the per-type
// multipole budget.
type TypeClass int

const (
	// ClassT0 is the temperature monopole term (scalar only).
	ClassT0 TypeClass = iota
	// ClassT1 is the temperature dipole term (scalar, vector).
	ClassT1
	// ClassT2 is the temperature quadrupole term (all modes).
	ClassT2
	// ClassE is E-mode polarization.
	ClassE
	// ClassB is B-mode polarization (vector, tensor).
	ClassB
	// ClassLensCMB is the CMB lensing potential (scalar only).
	ClassLensCMB
	// ClassDensity is number counts in one redshift bin (scalar only).
	ClassDensity
	// ClassLensing is galaxy lensing in one redshift bin (scalar only).
	ClassLensing
)

// Windowed reports whether the class is observed through a redshift
// selection window (one transfer type per bin).
func (c TypeClass) Windowed() bool {
	return c == ClassDensity || c == ClassLensing
}

// String implements fmt.Stringer.
func (c TypeClass) String() string {
	switch c {
	case ClassT0:
		return "t0"
	case ClassT1:
		return "t1"
	case ClassT2:
		return "t2"
	case ClassE:
		return "e"
	case ClassB:
		return "b"
	case ClassLensCMB:
		return "lcmb"
	case ClassDensity:
		return "density"
	case ClassLensing:
		return "lensing"
	}

	return "unknown"
}

// SourceRole names the upstream perturbation source a transfer type reads.
// Several transfer types may share one role (e.g. E and B both read the
// polarization source; lensing and density both read the potential).
type SourceRole int

const (
	// RoleT0 is the temperature monopole source.
	RoleT0 SourceRole = iota
	// RoleT1 is the temperature dipole source.
	RoleT1
	// RoleT2 is the temperature quadrupole source.
	RoleT2
	// RolePolarization is the common E/B polarization source.
	RolePolarization
	// RolePotential is the gravitational potential source used by lensing
	// and number-count types.
	RolePotential
)

// Role returns the upstream source role read by the class.
func (c TypeClass) Role() SourceRole {
	switch c {
	case ClassT0:
		return RoleT0
	case ClassT1:
		return RoleT1
	case ClassT2:
		return RoleT2
	case ClassE, ClassB:
		return RolePolarization
	default:
		return RolePotential
	}
}

// Observables records which output spectra were requested upstream, and the
// multipole budgets of the two observable scales (CMB vs large-scale
// structure), plus the non-scalar budget.
type Observables struct {
	Temperature   bool // CMB temperature
	Polarization  bool // CMB polarization (E, and B for vector/tensor)
	CMBLensing    bool // CMB lensing potential (scalar)
	Density       bool // number counts per redshift bin (scalar)
	GalaxyLensing bool // cosmic shear per redshift bin (scalar)

	Bins int // number of redshift bins for windowed classes

	LMaxCMB       int // multipole budget of CMB-scale classes
	LMaxLSS       int // multipole budget of large-scale-structure classes
	LMaxNonScalar int // multipole budget of vector/tensor classes
}

// lMax returns the largest multipole any requested class needs for the
// given set of modes.
func (o Observables) lMax(modes []Mode) int {
	lMax := 0
	for _, m := range modes {
		switch m {
		case Scalar:
			if o.Temperature || o.Polarization || o.CMBLensing {
				lMax = maxInt(lMax, o.LMaxCMB)
			}
			if o.Density || o.GalaxyLensing {
				lMax = maxInt(lMax, o.LMaxLSS)
			}
		case Vector, Tensor:
			lMax = maxInt(lMax, o.LMaxNonScalar)
		}
	}

	return lMax
}

// maxInt returns the larger of two ints.
func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
