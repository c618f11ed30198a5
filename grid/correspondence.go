package grid

import "fmt"

// TransferType describes one column family of the transfer table: the
// observable class, the redshift bin it belongs to (windowed classes only),
// and the per-type multipole budget.
type TransferType struct {
	Class TypeClass
	Bin   int // redshift bin, -1 for non-windowed classes
	LMax  int // this type's own maximum multipole
}

// Correspondence is the per-mode enumeration of requested transfer types.
// The enumeration order is deterministic: quadrupole and E first (classes
// shared between modes), then the mode-specific classes, then one slot per
// redshift bin for each windowed class.
type Correspondence struct {
	Mode  Mode
	Types []TransferType
}

// Correspond enumerates the transfer types of each requested mode.
func Correspond(obs Observables, modes []Mode) ([]Correspondence, error) {
	if len(modes) == 0 {
		return nil, ErrNoModes
	}
	if !obs.Temperature && !obs.Polarization && !obs.CMBLensing && !obs.Density && !obs.GalaxyLensing {
		return nil, ErrNoObservables
	}

	out := make([]Correspondence, 0, len(modes))
	for _, m := range modes {
		c := Correspondence{Mode: m}

		// Classes common to every mode.
		if obs.Temperature {
			c.add(ClassT2, obs.LMaxFor(m, ClassT2))
		}
		if obs.Polarization {
			c.add(ClassE, obs.LMaxFor(m, ClassE))
		}

		switch m {
		case Scalar:
			if obs.Temperature {
				c.add(ClassT0, obs.LMaxCMB)
				c.add(ClassT1, obs.LMaxCMB)
			}
			if obs.CMBLensing {
				c.add(ClassLensCMB, obs.LMaxCMB)
			}
			if obs.Density {
				for bin := 0; bin < obs.Bins; bin++ {
					c.addBin(ClassDensity, bin, obs.LMaxLSS)
				}
			}
			if obs.GalaxyLensing {
				for bin := 0; bin < obs.Bins; bin++ {
					c.addBin(ClassLensing, bin, obs.LMaxLSS)
				}
			}

		case Vector:
			if obs.Temperature {
				c.add(ClassT1, obs.LMaxNonScalar)
			}
			if obs.Polarization {
				c.add(ClassB, obs.LMaxNonScalar)
			}

		case Tensor:
			if obs.Polarization {
				c.add(ClassB, obs.LMaxNonScalar)
			}
		}

		if len(c.Types) == 0 {
			return nil, fmt.Errorf("mode %s: %w", m, ErrNoObservables)
		}
		out = append(out, c)
	}

	return out, nil
}

// LMaxFor returns the multipole budget of a class within a mode.
func (o Observables) LMaxFor(m Mode, c TypeClass) int {
	if m != Scalar {
		return o.LMaxNonScalar
	}
	if c.Windowed() {
		return o.LMaxLSS
	}

	return o.LMaxCMB
}

func (c *Correspondence) add(class TypeClass, lMax int) {
	c.Types = append(c.Types, TransferType{Class: class, Bin: -1, LMax: lMax})
}

func (c *Correspondence) addBin(class TypeClass, bin, lMax int) {
	c.Types = append(c.Types, TransferType{Class: class, Bin: bin, LMax: lMax})
}

// Len returns the number of transfer types of the mode.
func (c Correspondence) Len() int { return len(c.Types) }
