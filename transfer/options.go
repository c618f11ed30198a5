package transfer

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/transferfn/grid"
	"github.com/katalvlaran/transferfn/radial"
)

// DEFAULTS - precision settings of the projection stage. The values
// reproduce the standard accuracy/speed compromise of line-of-sight codes.
const (
	// DefaultHyperXMin is the argument below which basis functions are
	// approximated by zero.
	DefaultHyperXMin = 1e-5

	// DefaultHyperSamplingFlat is the number of flat-table samples per
	// 2 pi oscillation.
	DefaultHyperSamplingFlat = 8.

	// DefaultHyperSamplingCurvedLowNu and ...HighNu are the curved-table
	// sampling rates below and above HyperNuSamplingStep.
	DefaultHyperSamplingCurvedLowNu  = 7.
	DefaultHyperSamplingCurvedHighNu = 3.

	// DefaultHyperNuSamplingStep separates the two curved sampling regimes.
	DefaultHyperNuSamplingStep = 1000.

	// DefaultHyperPhiMinAbs is the negligibility threshold of the basis
	// functions; integration starts where |Phi| first exceeds it.
	DefaultHyperPhiMinAbs = 1e-10

	// DefaultHyperInterpOrder is the Hermite order used when reading the
	// basis tables; the septic order tolerates the sparse sampling rates
	// above.
	DefaultHyperInterpOrder = radial.OrderHigh

	// DefaultSelectionCutAtSigma is the Gaussian window support in widths.
	DefaultSelectionCutAtSigma = 5.

	// DefaultSelectionSampling is the base number of time samples per
	// redshift bin.
	DefaultSelectionSampling = 50

	// DefaultSelectionSamplingBessel is the number of samples per radial
	// oscillation when the oscillation-resolving rule dominates.
	DefaultSelectionSamplingBessel = 20

	// DefaultSelectionTophatEdge smooths the top-hat flanks, as a fraction
	// of the bin width.
	DefaultSelectionTophatEdge = 0.1

	// DefaultLSwitchLimber is the multipole above which the CMB lensing
	// potential uses the Limber approximation.
	DefaultLSwitchLimber = 10.

	// DefaultLSwitchLimberDensity scales the per-bin Limber switch of the
	// windowed observables: l >= value * z_mean.
	DefaultLSwitchLimberDensity = 30.

	// DefaultNeglectLateSource is the multipole (times the angular
	// rescaling) above which late-time CMB sources are dropped.
	DefaultNeglectLateSource = 400.

	// DefaultLCMBRescale, ...Tilt, ...Pivot parametrize an optional
	// rescaling of the CMB lensing source, rescale*(k/pivot)^tilt.
	DefaultLCMBRescale = 1.
	DefaultLCMBTilt    = 0.
	DefaultLCMBPivot   = 0.1
)

// Precision gathers every tunable of the projection stage. The zero value
// is not usable; start from DefaultPrecision and override selectively.
type Precision struct {
	Grid grid.Config

	HyperXMin                 float64
	HyperSamplingFlat         float64
	HyperSamplingCurvedLowNu  float64
	HyperSamplingCurvedHighNu float64
	HyperNuSamplingStep       float64
	HyperPhiMinAbs            float64
	HyperInterpOrder          radial.InterpOrder

	SelectionCutAtSigma     float64
	SelectionSampling       int
	SelectionSamplingBessel int
	SelectionTophatEdge     float64

	LSwitchLimber        float64
	LSwitchLimberDensity float64

	// NeglectLateSource and the per-kernel thresholds of the small-scale
	// neglect test: a transfer function is zeroed when l is well below
	// the wavenumber horizon, l < (k - delta) * r_rec.
	NeglectLateSource float64
	NeglectScalarT0   float64
	NeglectScalarT1   float64
	NeglectScalarT2   float64
	NeglectScalarE    float64
	NeglectVector     float64
	NeglectTensorT2   float64
	NeglectTensorE    float64
	NeglectTensorB    float64

	LCMBRescale float64
	LCMBTilt    float64
	LCMBPivot   float64
}

// DefaultPrecision returns the documented defaults.
func DefaultPrecision() Precision {
	return Precision{
		Grid: grid.DefaultConfig(),

		HyperXMin:                 DefaultHyperXMin,
		HyperSamplingFlat:         DefaultHyperSamplingFlat,
		HyperSamplingCurvedLowNu:  DefaultHyperSamplingCurvedLowNu,
		HyperSamplingCurvedHighNu: DefaultHyperSamplingCurvedHighNu,
		HyperNuSamplingStep:       DefaultHyperNuSamplingStep,
		HyperPhiMinAbs:            DefaultHyperPhiMinAbs,
		HyperInterpOrder:          DefaultHyperInterpOrder,

		SelectionCutAtSigma:     DefaultSelectionCutAtSigma,
		SelectionSampling:       DefaultSelectionSampling,
		SelectionSamplingBessel: DefaultSelectionSamplingBessel,
		SelectionTophatEdge:     DefaultSelectionTophatEdge,

		LSwitchLimber:        DefaultLSwitchLimber,
		LSwitchLimberDensity: DefaultLSwitchLimberDensity,

		NeglectLateSource: DefaultNeglectLateSource,
		NeglectScalarT0:   0.15,
		NeglectScalarT1:   0.04,
		NeglectScalarT2:   0.15,
		NeglectScalarE:    0.11,
		NeglectVector:     1.,
		NeglectTensorT2:   0.2,
		NeglectTensorE:    0.25,
		NeglectTensorB:    0.1,

		LCMBRescale: DefaultLCMBRescale,
		LCMBTilt:    DefaultLCMBTilt,
		LCMBPivot:   DefaultLCMBPivot,
	}
}

// Thermodynamics carries the recombination quantities the projection
// depends on.
type Thermodynamics struct {
	// TauRec is the conformal time of recombination.
	TauRec float64

	// TauCut is the conformal time above which late CMB sources may be
	// neglected at high multipole.
	TauCut float64

	// AngularRescaling is the curvature correction to the angular scale
	// of the sound horizon (1 in flat space).
	AngularRescaling float64
}

// TableBuilder supplies exact curved-space basis tables for the low-q
// regime, one per (sign of curvature, nu) pair.
type TableBuilder func(sgnK int, nu float64, ls []int, xMin, xMax, samplingRate, phiMinAbs float64) (radial.BasisTable, error)

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger; the default is zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithWorkers caps the number of parallel workers; the default is
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTableBuilder plugs in the exact curved-space basis tables.
// Mandatory for curved geometry; ignored in flat space.
func WithTableBuilder(b TableBuilder) Option {
	return func(e *Engine) { e.builder = b }
}

func defaultWorkers() int { return runtime.NumCPU() }
