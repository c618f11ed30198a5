package transfer

import (
	"fmt"
	"math"

	"github.com/katalvlaran/transferfn/radial"
)

// workspace is the per-worker scratch of the q loop: interpolation and
// convolution buffers sized once, plus the curved basis table of the
// current wavenumber when one is needed.
type workspace struct {
	// interp receives the upstream source spline read at one k.
	interp []float64

	// src and radialBuf are sized for the largest per-type time sampling.
	src       []float64
	radialBuf []float64

	coords radial.Coordinates

	// curved is the exact basis table of the current q in the low-q
	// curved regime, nil otherwise.
	curved radial.BasisTable
}

func newWorkspace(upstreamLen, maxTauSize int) *workspace {
	return &workspace{
		interp:    make([]float64, upstreamLen),
		src:       make([]float64, maxTauSize),
		radialBuf: make([]float64, maxTauSize),
	}
}

// basisFor returns the basis table of wavenumber index iq together with
// the flat-approximation flag.
//
// Description:
//
//	Flat geometry and the high-q curved regime read the shared flat
//	table; in the latter case the radial functions rescale its argument
//	and amplitude. The low-q curved regime builds an exact table per
//	wavenumber: in closed space nu must sit on an integer overtone and
//	multipoles at or above nu drop out; the sampling rate is relaxed
//	once nu is large.
//
// Errors:
//   - ErrOvertoneDrift - closed-space nu off the integer lattice;
//   - builder errors pass through.
func (ws *workspace) basisFor(r *run, iq int, q float64) (radial.BasisTable, bool, error) {
	e := r.e
	if e.geom.Sgn == 0 {
		return r.flat, false, nil
	}
	if iq >= r.qg.FlatApproxIndex {
		ws.curved = nil
		return r.flat, true, nil
	}

	sqrtK := e.geom.SqrtAbsK()
	nu := q / sqrtK
	tau0 := r.tau0

	xMin := e.prec.HyperXMin
	xMax := sqrtK * tau0

	ls := e.lgrid.L
	if e.geom.Sgn == 1 {
		xMax = math.Min(xMax, math.Pi/2.-xMin)

		intNu := int(nu + 0.2)
		if nu-float64(intNu) > 1e-6 {
			return nil, false, fmt.Errorf("q=%g gives nu=%g: %w", q, nu, ErrOvertoneDrift)
		}
		nu = float64(intNu)

		// closed-space families terminate at l = nu-1
		for len(ls) > 0 && float64(ls[len(ls)-1]) >= nu {
			ls = ls[:len(ls)-1]
		}
	}

	sampling := e.prec.HyperSamplingCurvedLowNu
	if nu > e.prec.HyperNuSamplingStep {
		sampling = e.prec.HyperSamplingCurvedHighNu
	}

	tab, err := e.builder(e.geom.Sgn, nu, ls, xMin, xMax, sampling, e.prec.HyperPhiMinAbs)
	if err != nil {
		return nil, false, fmt.Errorf("basis table at q=%g: %w", q, err)
	}
	ws.curved = tab

	return tab, false, nil
}

// growFor resizes the convolution buffers when a type needs more points
// than anticipated.
func (ws *workspace) growFor(n int) {
	if n > len(ws.src) {
		ws.src = make([]float64, n)
		ws.radialBuf = make([]float64, n)
	}
}
