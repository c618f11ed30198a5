// Package radial evaluates the geometric projection kernels of the
// line-of-sight integral: combinations of the hyperspherical basis
// function Phi^nu_l(x) and its first two derivatives, assembled per
// observable into eleven closed-form variants.
//
// Basis functions are consumed through the BasisTable interface: a
// uniformly sampled table of Phi, dPhi and d2Phi per multipole, queried
// by Hermite interpolation at three selectable orders. The flat-space
// table (spherical Bessel functions) is built in-package; curved tables
// can be supplied by an external builder. Above the flat-approximation
// threshold, curved kernels are evaluated from the flat table with a
// turning-point argument rescaling and a WKB amplitude correction.
package radial
