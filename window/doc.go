// Package window defines the redshift selection functions used by the
// large-scale-structure observables: the analytic shape W(z) of one
// redshift bin, and the z-range outside which the shape is negligible.
//
// A Window is a pure value object. Evaluation is unnormalized; callers
// normalize over their own time sampling so that the numerical integral,
// not the analytic one, equals unity.
package window
