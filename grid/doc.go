// Package grid plans the sampling grids of the transfer-function engine:
// the multipole list l, the curvature-generalized wavenumber list q with its
// per-mode flat wavenumbers k(q), and the correspondence between requested
// observable types and the upstream perturbation sources they project.
//
// The grids are computed once, validated eagerly, and immutable afterwards.
// All sizing decisions live here so that the integration engine can treat
// them as read-only inputs shared across worker goroutines.
//
//   - Multipoles: logarithmic step at low l, clamped to a linear step,
//     last point forced to the requested maximum.
//   - Wavenumbers: smooth geometric-to-linear step blending, with
//     integer-overtone quantization in closed geometry.
//   - Correspondence: deterministic enumeration of transfer types per mode,
//     each bound to an upstream source role and a per-type multipole budget.
package grid
