// Package transfer assembles the full pipeline: it builds the multipole
// and wavenumber grids, prepares per-observable time samplings, and fills
// the transfer-function table Delta_l(q) by convolving upstream source
// functions with radial projection kernels along the line of sight, or by
// the Limber approximation where that is accurate.
//
// The Engine owns the immutable inputs (geometry, background, windows,
// precision); Compute distributes wavenumbers over a worker pool, one
// workspace per worker, and returns a read-only Table queryable by
// monotone spline interpolation in q.
package transfer
