package window

import (
	"fmt"
	"math"
)

// Shape selects the analytic form of a redshift selection function.
type Shape int

const (
	// Dirac - an infinitely thin bin at the mean redshift. Evaluate returns
	// 1 there; integration schemes treat the single point with weight 2.
	Dirac Shape = iota

	// Gaussian - exp(-(z-mean)^2/(2 width^2)) / (width sqrt(2 pi)).
	Gaussian

	// TopHat - a smoothed step, (1 - tanh((|z-mean|-width)/(edge*width)))/2.
	TopHat
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case Dirac:
		return "dirac"
	case Gaussian:
		return "gaussian"
	case TopHat:
		return "tophat"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Window - one redshift bin of a windowed observable
//
// Description:
//
//	Mean is the central redshift of the bin; Width its half-width (standard
//	deviation for Gaussian, half-size for TopHat, ignored for Dirac).
//	Evaluate returns the unnormalized shape; Bounds returns the redshift
//	interval outside which the shape is treated as exactly zero.
//
// Errors:
//   - ErrBadMean, ErrBadWidth, ErrUnknownShape - from Validate.
type Window struct {
	Shape Shape
	Mean  float64
	Width float64
}

// Validate checks the window parameters.
func (w Window) Validate() error {
	if w.Mean < 0 {
		return fmt.Errorf("mean z=%g: %w", w.Mean, ErrBadMean)
	}
	switch w.Shape {
	case Dirac:
		return nil
	case Gaussian, TopHat:
		if w.Width <= 0 {
			return fmt.Errorf("%s width=%g: %w", w.Shape, w.Width, ErrBadWidth)
		}
		return nil
	default:
		return fmt.Errorf("%v: %w", w.Shape, ErrUnknownShape)
	}
}

// Evaluate returns the unnormalized selection value at redshift z.
// tophatEdge controls the smoothing of the TopHat flanks, as a fraction of
// the width; it is ignored by the other shapes.
func (w Window) Evaluate(z, tophatEdge float64) float64 {
	switch w.Shape {
	case Dirac:
		return 1.

	case Gaussian:
		x := (z - w.Mean) / w.Width
		return math.Exp(-0.5*x*x) / (w.Width * math.Sqrt(2.*math.Pi))

	case TopHat:
		x := math.Abs(z - w.Mean)
		return 0.5 * (1. - math.Tanh((x-w.Width)/(tophatEdge*w.Width)))

	default:
		return 0.
	}
}

// Bounds returns the redshift interval [zMin, zMax] over which the window
// is sampled. cutAtSigma is the Gaussian support in units of the width;
// tophatEdge extends the TopHat support beyond its nominal half-size to
// cover the smoothed flanks. zMin is clipped at 0.
func (w Window) Bounds(cutAtSigma, tophatEdge float64) (zMin, zMax float64) {
	switch w.Shape {
	case Dirac:
		return w.Mean, w.Mean

	case Gaussian:
		zMin = w.Mean - cutAtSigma*w.Width
		zMax = w.Mean + cutAtSigma*w.Width

	case TopHat:
		half := w.Width * (1. + cutAtSigma*tophatEdge)
		zMin = w.Mean - half
		zMax = w.Mean + half
	}

	if zMin < 0 {
		zMin = 0
	}

	return zMin, zMax
}
