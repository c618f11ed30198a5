// Package grid: step-size configuration and documented defaults.
package grid

// DEFAULTS - single source of truth for the sampling policy. The values
// reproduce the standard precision settings of line-of-sight CMB codes.
const (
	// DefaultLLogStep is the ratio r of the logarithmic multipole step
	// l -> l*(r^a - 1), a being the angular-rescaling exponent.
	DefaultLLogStep = 1.12

	// DefaultLLinStep is the linear multipole step used once the
	// logarithmic step would exceed it.
	DefaultLLinStep = 40

	// DefaultQLinStep is the linear wavenumber step in units of the kernel
	// oscillation period.
	DefaultQLinStep = 0.45

	// DefaultQLogStepSpline is the logarithmic relative step parameter in
	// the low-q limit of the blended step formula.
	DefaultQLogStepSpline = 170.

	// DefaultQLogStepOpen softens QLogStepSpline in open geometry, as an
	// exponent on the angular-rescaling factor.
	DefaultQLogStepOpen = 6.

	// DefaultQLogStepTrapzd is the denser logarithmic parameter used below
	// the overtone threshold in closed geometry.
	DefaultQLogStepTrapzd = 20.

	// DefaultQNumStepTransition is the number of grid points over which the
	// closed-geometry step blends back to the flat-like formula.
	DefaultQNumStepTransition = 250

	// DefaultFlatApproximationNu is the overtone index above which radial
	// kernels may be evaluated from the flat-space table with argument and
	// amplitude rescaling.
	DefaultFlatApproximationNu = 4000.
)

// Config gathers the grid-construction parameters. The zero value is not
// usable; start from DefaultConfig and override selectively.
type Config struct {
	LLogStep float64 // multipole log-step ratio (> 1)
	LLinStep int     // multipole linear-step clamp (>= 1)

	QLinStep           float64 // wavenumber linear step, in oscillation periods
	QLogStepSpline     float64 // wavenumber log-step parameter, flat/open
	QLogStepOpen       float64 // curvature softening exponent for the above
	QLogStepTrapzd     float64 // wavenumber log-step parameter, closed low-nu
	QNumStepTransition int     // closed-geometry blending length, in points

	FlatApproximationNu float64 // overtone threshold of the flat approximation
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		LLogStep:            DefaultLLogStep,
		LLinStep:            DefaultLLinStep,
		QLinStep:            DefaultQLinStep,
		QLogStepSpline:      DefaultQLogStepSpline,
		QLogStepOpen:        DefaultQLogStepOpen,
		QLogStepTrapzd:      DefaultQLogStepTrapzd,
		QNumStepTransition:  DefaultQNumStepTransition,
		FlatApproximationNu: DefaultFlatApproximationNu,
	}
}
