package source

// Point carries the background quantities needed at one conformal time.
type Point struct {
	// ScaleFactor a(tau), normalized to 1 today.
	ScaleFactor float64

	// Hubble is the conformal Hubble rate H(tau) in 1/Mpc.
	Hubble float64

	// OmegaM is the matter density fraction at tau.
	OmegaM float64
}

// Background is the cosmological background the projection depends on.
// Implementations must be safe for concurrent readers.
type Background interface {
	// ConformalAge returns tau0, the conformal time today, in Mpc.
	ConformalAge() float64

	// TimeOfRedshift returns the conformal time at redshift z.
	TimeOfRedshift(z float64) (float64, error)

	// At returns the background quantities at conformal time tau.
	At(tau float64) (Point, error)
}

// Redshift infers z from the scale factor of a background point.
func (p Point) Redshift() float64 { return 1./p.ScaleFactor - 1. }
