package transfer

import (
	"fmt"

	"github.com/katalvlaran/transferfn/grid"
	"github.com/katalvlaran/transferfn/source"
)

type sourceKey struct {
	mode grid.Mode
	ic   int
	role grid.SourceRole
}

// SourceSet - upstream source functions S(k, tau) keyed by mode, initial
// condition and source role
//
// Description:
//
//	All tables share one (tau, k) sampling. Each Set call splines the
//	table along k immediately, so the per-wavenumber interpolation during
//	Compute is a plain read. A SourceSet is immutable once handed to
//	Compute.
//
// Errors:
//   - ErrNotIncreasing - tau or k not strictly increasing;
//   - source.ErrShapeMismatch - a table with wrong dimensions.
type SourceSet struct {
	tau []float64
	k   []float64

	tables map[sourceKey]*source.SplineTable
	numIC  map[grid.Mode]int
}

// NewSourceSet validates the shared sampling grids.
func NewSourceSet(tau, k []float64) (*SourceSet, error) {
	if len(tau) < 2 || len(k) < 2 {
		return nil, fmt.Errorf("%d tau and %d k samples: %w", len(tau), len(k), source.ErrEmptyTable)
	}
	for i := 1; i < len(tau); i++ {
		if tau[i] <= tau[i-1] {
			return nil, fmt.Errorf("tau[%d]: %w", i, ErrNotIncreasing)
		}
	}
	for i := 1; i < len(k); i++ {
		if k[i] <= k[i-1] {
			return nil, fmt.Errorf("k[%d]: %w", i, ErrNotIncreasing)
		}
	}

	return &SourceSet{
		tau:    tau,
		k:      k,
		tables: make(map[sourceKey]*source.SplineTable),
		numIC:  make(map[grid.Mode]int),
	}, nil
}

// Set registers one source table, rows[tau][k].
func (s *SourceSet) Set(m grid.Mode, ic int, role grid.SourceRole, rows [][]float64) error {
	if len(rows) != len(s.tau) {
		return fmt.Errorf("%d rows for %d tau samples: %w", len(rows), len(s.tau), source.ErrShapeMismatch)
	}

	tab, err := source.NewSplineTable(s.k, rows)
	if err != nil {
		return err
	}

	s.tables[sourceKey{m, ic, role}] = tab
	if ic+1 > s.numIC[m] {
		s.numIC[m] = ic + 1
	}

	return nil
}

// Tau returns the shared time sampling.
func (s *SourceSet) Tau() []float64 { return s.tau }

// KMin and KMax bound the shared wavenumber sampling.
func (s *SourceSet) KMin() float64 { return s.k[0] }
func (s *SourceSet) KMax() float64 { return s.k[len(s.k)-1] }

// NumIC returns the number of initial conditions registered for a mode.
func (s *SourceSet) NumIC(m grid.Mode) int { return s.numIC[m] }

func (s *SourceSet) table(m grid.Mode, ic int, role grid.SourceRole) (*source.SplineTable, error) {
	tab, ok := s.tables[sourceKey{m, ic, role}]
	if !ok {
		return nil, fmt.Errorf("mode %s ic %d role %d: %w", m, ic, role, ErrMissingSource)
	}

	return tab, nil
}
