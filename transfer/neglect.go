package transfer

import "github.com/katalvlaran/transferfn/grid"

// neglectDelta returns the wavenumber margin of the small-scale neglect
// test for one CMB kernel class, or -1 when the class is never neglected
// (lensing potential and windowed classes keep every multipole).
func (p *Precision) neglectDelta(m grid.Mode, class grid.TypeClass) float64 {
	switch m {
	case grid.Scalar:
		switch class {
		case grid.ClassT0:
			return p.NeglectScalarT0
		case grid.ClassT1:
			return p.NeglectScalarT1
		case grid.ClassT2:
			return p.NeglectScalarT2
		case grid.ClassE:
			return p.NeglectScalarE
		}

	case grid.Vector:
		switch class {
		case grid.ClassT1, grid.ClassT2, grid.ClassE, grid.ClassB:
			return p.NeglectVector
		}

	case grid.Tensor:
		switch class {
		case grid.ClassT2:
			return p.NeglectTensorT2
		case grid.ClassE:
			return p.NeglectTensorE
		case grid.ClassB:
			return p.NeglectTensorB
		}
	}

	return -1.
}

// canNeglect reports whether the transfer function of one (class, l, k)
// vanishes because the multipole sits well below the angular scale of
// the wavenumber at recombination, l < (k - delta) * r_rec.
func (p *Precision) canNeglect(m grid.Mode, class grid.TypeClass, l int, k, raRec float64) bool {
	delta := p.neglectDelta(m, class)
	if delta < 0 {
		return false
	}

	return float64(l) < (k-delta)*raRec
}

// lateSourceNeglected reports whether sources after the cut time may be
// dropped for this class at multipole l: at high l only the recombination
// era contributes, except for classes with a late integrated effect (the
// scalar T0 monopole and the non-CMB classes).
func (p *Precision) lateSourceNeglected(m grid.Mode, class grid.TypeClass, l int, angularRescaling float64) bool {
	if float64(l) <= p.NeglectLateSource*angularRescaling {
		return false
	}

	switch m {
	case grid.Scalar:
		return class == grid.ClassT1 || class == grid.ClassT2 || class == grid.ClassE
	case grid.Vector:
		return class == grid.ClassT1 || class == grid.ClassT2 ||
			class == grid.ClassE || class == grid.ClassB
	case grid.Tensor:
		return class == grid.ClassE || class == grid.ClassB
	}

	return false
}
