// Package source prepares upstream source functions S(k, tau) for
// line-of-sight projection: cubic-spline interpolation along k, time
// resampling of windowed observables, selection-function evaluation and
// normalization, and the observable-specific source rescalings (CMB
// lensing window, Poisson prefactor for number counts, galaxy-lensing
// convolution).
//
// The package does not know about multipoles or radial kernels; it only
// turns an upstream (k, tau) table into the per-wavenumber time profiles
// the projection integral consumes. Background cosmology enters through
// the Background interface.
package source
