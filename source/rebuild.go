package source

import (
	"fmt"
	"math"
)

// RescaleLensCMB multiplies an in-place source profile, already restricted
// to times after recombination, by the CMB lensing window
//
//	W(tau) = -2 (tau - tauRec) / ((tau0 - tau)(tau0 - tauRec))
//
// and by the overall amplitude rescale * (k/pivot)^tilt. The last sample
// sits at tau0 where the window diverges; it is set to zero, the
// projection kernel vanishes there anyway.
func RescaleLensCMB(src, tau0MinusTau []float64, tau0, tauRec, k, rescale, tilt, pivot float64) {
	amp := rescale * math.Pow(k/pivot, tilt)

	for i := range src {
		if i == len(src)-1 {
			src[i] = 0.
			continue
		}
		tau := tau0 - tau0MinusTau[i]
		src[i] *= amp * (-2.) * (tau - tauRec) / (tau0 - tau) / (tau0 - tauRec)
	}
}

// RescaleDensity turns an in-place potential profile into the number-count
// density source of one bin: the normalized selection W(tau) times the
// inverse Poisson prefactor
//
//	-2 k^2 / (3 Omega_m(tau) H^2(tau) a^2(tau))
//
// which converts the potential back into the matter density contrast.
func RescaleDensity(bg Background, src, sel, tau0MinusTau []float64, tau0, k float64) error {
	for i := range src {
		p, err := bg.At(tau0 - tau0MinusTau[i])
		if err != nil {
			return fmt.Errorf("background at tau=%g: %w", tau0-tau0MinusTau[i], err)
		}
		src[i] *= sel[i] * (-2.) / 3. / p.OmegaM / (p.Hubble * p.Hubble) / (p.ScaleFactor * p.ScaleFactor) * k * k
	}

	return nil
}

// RescaleLensing multiplies an in-place potential profile by the
// galaxy-lensing efficiency of one bin: for each lens time, the selection
// function integrated over all sources behind the lens,
//
//	W(tau) = -\int dtau' sel(tau') (chi' - chi) / (chi chi'),  chi = tau0 - tau
//
// evaluated with the trapezoidal weights of the selection sampling. The
// last sample sits at the observer and is set to zero.
func RescaleLensing(src, tau0MinusTau, srcTau0MinusTau, sel, selWeights []float64) {
	for i := range src {
		if i == len(src)-1 {
			src[i] = 0.
			continue
		}

		chi := tau0MinusTau[i]
		r := 0.
		for j, chiSrc := range srcTau0MinusTau {
			// sources at z=0 or in front of the lens do not contribute
			if chiSrc > 0 && chiSrc-chi > 0 {
				r += -2. * (chiSrc - chi) / chi / chiSrc * sel[j] * selWeights[j]
			}
		}
		src[i] *= r / 2.
	}
}
