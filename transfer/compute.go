package transfer

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/transferfn/grid"
	"github.com/katalvlaran/transferfn/radial"
	"github.com/katalvlaran/transferfn/source"
	"github.com/katalvlaran/transferfn/window"
)

// Config carries the immutable inputs of an Engine.
type Config struct {
	Geometry    grid.Geometry
	Background  source.Background
	Thermo      Thermodynamics
	Observables grid.Observables
	Modes       []grid.Mode

	// Windows holds one selection window per redshift bin; required when
	// number counts or galaxy lensing are requested.
	Windows []window.Window

	Precision Precision
}

// Engine - the transfer-function pipeline
//
// Description:
//
//	New validates the configuration and freezes the multipole grid and
//	the transfer-type enumeration. Compute then samples the wavenumber
//	grid against a concrete source set and fills the table. An Engine is
//	reusable across source sets and safe for concurrent Compute calls.
//
// Errors:
//   - ErrNilBackground  - missing background cosmology;
//   - ErrBadWindows     - window count disagrees with Observables.Bins;
//   - ErrNoTableBuilder - curved geometry without WithTableBuilder;
//   - grid.ErrNoModes, grid.ErrNoObservables - empty request.
type Engine struct {
	prec    Precision
	geom    grid.Geometry
	bg      source.Background
	thermo  Thermodynamics
	obs     grid.Observables
	modes   []grid.Mode
	windows []window.Window

	lgrid *grid.MultipoleGrid
	corr  []grid.Correspondence

	log     *zap.Logger
	workers int
	builder TableBuilder
}

// New builds an Engine from the configuration and options.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Background == nil {
		return nil, ErrNilBackground
	}
	if (cfg.Observables.Density || cfg.Observables.GalaxyLensing) &&
		len(cfg.Windows) != cfg.Observables.Bins {
		return nil, fmt.Errorf("%d windows for %d bins: %w", len(cfg.Windows), cfg.Observables.Bins, ErrBadWindows)
	}
	for i, w := range cfg.Windows {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("window %d: %w", i, err)
		}
	}

	e := &Engine{
		prec:    cfg.Precision,
		geom:    cfg.Geometry,
		bg:      cfg.Background,
		thermo:  cfg.Thermo,
		obs:     cfg.Observables,
		modes:   append([]grid.Mode(nil), cfg.Modes...),
		windows: append([]window.Window(nil), cfg.Windows...),
		log:     zap.NewNop(),
		workers: defaultWorkers(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.geom.Sgn != 0 && e.builder == nil {
		return nil, ErrNoTableBuilder
	}

	var err error
	if e.lgrid, err = grid.Multipoles(e.prec.Grid, e.obs, e.modes, e.thermo.AngularRescaling); err != nil {
		return nil, err
	}
	if e.corr, err = grid.Correspond(e.obs, e.modes); err != nil {
		return nil, err
	}

	return e, nil
}

// Multipoles exposes the frozen multipole grid.
func (e *Engine) Multipoles() []int { return e.lgrid.L }

// run bundles the per-Compute state shared by all workers.
type run struct {
	e     *Engine
	qg    *grid.WavenumberGrid
	flat  *radial.UniformTable
	tau0  float64
	plans [][]typePlan
	tab   *Table
}

// Compute fills the transfer table for one source set.
//
// Description:
//
//	Wavenumbers are distributed dynamically over the worker pool; each
//	worker owns a scratch workspace and, in the curved low-q regime,
//	builds the exact basis table of its current wavenumber. The returned
//	table is sealed and safe for concurrent queries.
func (e *Engine) Compute(ctx context.Context, src *SourceSet) (*Table, error) {
	start := time.Now()
	tau0 := e.bg.ConformalAge()

	qPeriod := 2. * math.Pi / (tau0 - e.thermo.TauRec) * e.thermo.AngularRescaling
	qg, err := grid.Wavenumbers(e.prec.Grid, e.geom, src.KMin(), src.KMax(), e.modes, qPeriod, e.thermo.AngularRescaling)
	if err != nil {
		return nil, err
	}

	plans := make([][]typePlan, len(e.corr))
	numIC := make([]int, len(e.corr))
	maxTau := 0
	for im, c := range e.corr {
		if plans[im], err = e.preparePlans(c, src.Tau()); err != nil {
			return nil, err
		}
		for _, p := range plans[im] {
			if len(p.t0mt) > maxTau {
				maxTau = len(p.t0mt)
			}
		}

		if numIC[im] = src.NumIC(c.Mode); numIC[im] == 0 {
			return nil, fmt.Errorf("mode %s: %w", c.Mode, ErrMissingSource)
		}
		for _, p := range plans[im] {
			for ic := 0; ic < numIC[im]; ic++ {
				if _, err = src.table(c.Mode, ic, p.role); err != nil {
					return nil, err
				}
			}
		}
	}

	flat, err := e.flatBasis(qg, tau0)
	if err != nil {
		return nil, err
	}

	r := &run{
		e:     e,
		qg:    qg,
		flat:  flat,
		tau0:  tau0,
		plans: plans,
		tab:   newTable(e.corr, e.lgrid.L, qg.Q, numIC),
	}

	e.log.Info("transfer table fill",
		zap.Int("multipoles", e.lgrid.Len()),
		zap.Int("wavenumbers", qg.Len()),
		zap.Int("workers", e.workers))

	g, gctx := errgroup.WithContext(ctx)
	var next atomic.Int64
	for w := 0; w < e.workers; w++ {
		g.Go(func() error {
			ws := newWorkspace(len(src.Tau()), maxTau)
			for {
				iq := int(next.Add(1)) - 1
				if iq >= qg.Len() {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := r.computeQ(ws, src, iq); err != nil {
					return fmt.Errorf("q index %d: %w", iq, err)
				}
			}
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	r.tab.seal()
	e.log.Info("transfer table done", zap.Duration("elapsed", time.Since(start)))

	return r.tab, nil
}

// flatBasis tabulates the flat-space basis functions once per Compute.
// In open geometry the argument range is stretched so that the rescaled
// flat-approximation queries stay inside the table.
func (e *Engine) flatBasis(qg *grid.WavenumberGrid, tau0 float64) (*radial.UniformTable, error) {
	xMax := qg.Q[qg.Len()-1] * tau0
	if e.geom.Sgn == -1 {
		lOverNu := float64(e.lgrid.Max()) / e.prec.Grid.FlatApproximationNu
		xMax *= lOverNu / math.Asinh(lOverNu) * 1.01
	}

	return radial.NewFlatTable(e.lgrid.L, e.prec.HyperXMin, xMax, e.prec.HyperSamplingFlat, e.prec.HyperPhiMinAbs)
}

// computeQ fills one wavenumber column of the table across all modes,
// initial conditions, types and multipoles.
func (r *run) computeQ(ws *workspace, src *SourceSet, iq int) error {
	e := r.e
	q := r.qg.Q[iq]

	basis, flatApprox, err := ws.basisFor(r, iq, q)
	if err != nil {
		return err
	}

	sqrtK := e.geom.SqrtAbsK()
	raRec := (r.tau0 - e.thermo.TauRec) * e.thermo.AngularRescaling
	t0mtCut := r.tau0 - e.thermo.TauCut
	curvedExact := e.geom.Sgn != 0 && iq < r.qg.FlatApproxIndex

	for im, c := range e.corr {
		m := c.Mode
		k := r.qg.K[im][iq]

		for ic := 0; ic < r.tab.NumIC(im); ic++ {
			for itt := range r.plans[im] {
				p := &r.plans[im][itt]

				st, err := src.table(m, ic, p.role)
				if err != nil {
					return err
				}
				if err = st.InterpolateK(k, ws.interp); err != nil {
					return err
				}

				srcBuf, err := r.buildSource(ws, p, src.Tau(), k)
				if err != nil {
					return err
				}
				ws.coords.Fill(e.geom, k, p.t0mt)

				for il := 0; il < p.lSize; il++ {
					l := e.lgrid.L[il]

					if e.prec.canNeglect(m, p.class, l, q, raRec) {
						continue
					}
					// closed-space families terminate at l = nu-1
					if e.geom.Sgn == 1 && l >= int(q/sqrtK+0.2) {
						continue
					}
					if curvedExact && il >= basis.LSize() {
						continue
					}

					qMaxBessel := r.qg.Q[r.qg.Len()-1]
					if e.geom.Sgn == 0 {
						qMaxBessel = r.flat.XMax() / p.t0mt[0]
					}

					var trsf float64
					if e.useLimber(p, m, l, q, qMaxBessel) {
						trsf = limberFirstOrder(l, k, p.t0mt, srcBuf)
					} else {
						args := radial.Args{
							Table:      basis,
							Geom:       e.geom,
							K:          k,
							Q:          q,
							LIndex:     il,
							L:          l,
							Coords:     &ws.coords,
							FlatApprox: flatApprox,
							Order:      e.prec.HyperInterpOrder,
						}
						lateCut := e.prec.lateSourceNeglected(m, p.class, l, e.thermo.AngularRescaling)
						if trsf, err = integrateExact(p.kern, args, p.t0mt, p.w, srcBuf, lateCut, t0mtCut, ws.radialBuf); err != nil {
							return err
						}
					}

					if trsf != 0. {
						if err = r.tab.set(im, ic, itt, il, iq, trsf); err != nil {
							return err
						}
					}
				}
			}
		}
	}

	return nil
}

// buildSource turns the k-interpolated upstream source into the effective
// source of one transfer type on its own time sampling.
func (r *run) buildSource(ws *workspace, p *typePlan, tau []float64, k float64) ([]float64, error) {
	e := r.e
	n := len(p.t0mt)
	ws.growFor(n)

	switch p.class {
	case grid.ClassLensCMB:
		buf := ws.src[:n]
		copy(buf, ws.interp[p.cut:])
		source.RescaleLensCMB(buf, p.t0mt, r.tau0, e.thermo.TauRec, k,
			e.prec.LCMBRescale, e.prec.LCMBTilt, e.prec.LCMBPivot)
		return buf, nil

	case grid.ClassDensity:
		buf, err := source.Resample(tau, ws.interp, r.tau0, p.t0mt)
		if err != nil {
			return nil, err
		}
		if err = source.RescaleDensity(e.bg, buf, p.sel, p.t0mt, r.tau0, k); err != nil {
			return nil, err
		}
		return buf, nil

	case grid.ClassLensing:
		buf, err := source.Resample(tau, ws.interp, r.tau0, p.t0mt)
		if err != nil {
			return nil, err
		}
		source.RescaleLensing(buf, p.t0mt, p.selT0mt, p.sel, p.selW)
		return buf, nil

	default:
		buf := ws.src[:n]
		copy(buf, ws.interp)
		return buf, nil
	}
}
