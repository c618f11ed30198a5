// Package transferfn turns the source functions of a cosmological
// perturbation code into transfer functions Delta_l(q): the projection of
// each source onto the sky, multipole by multipole and wavenumber by
// wavenumber, along the line of sight.
//
// 🚀 What is transferfn?
//
//	A concurrent projection engine that brings together:
//		• Adaptive grids: mixed log/linear multipole and wavenumber sampling
//		• Radial kernels: 11 curvature-aware variants for T, E, B, lensing
//		  and number counts, in flat, open and closed geometry
//		• Exact line-of-sight convolution with trapezoidal truncation
//		  control, or the Limber approximation where it is accurate
//		• Redshift windows: Gaussian, top-hat and Dirac selections with
//		  per-bin time sampling
//		• A sealed, spline-queryable output table
//
// ✨ Why choose transferfn?
//
//   - Deterministic layout – the table enumeration is fixed up front
//   - Parallel by default – wavenumbers spread over a worker pool
//   - Tunable – every precision knob starts from documented defaults
//   - Extensible – plug in exact curved-space basis tables via an option
//
// Under the hood, everything is organized under five subpackages:
//
//	grid/     — multipole and wavenumber grids, modes, observables
//	window/   — redshift selection windows
//	source/   — source resampling, selections and per-type rescaling
//	radial/   — basis-function tables and radial projection kernels
//	transfer/ — the Engine: planning, integration, the output Table
//
// Quick sketch of the pipeline:
//
//	sources S(k,tau) ──▶ grids ──▶ per-type sampling ──▶ convolution ──▶ Delta_l(q)
//
// Dive into the examples/ directory for complete scenarios, from a flat
// temperature run to windowed number counts.
//
//	go get github.com/katalvlaran/transferfn
package transferfn
