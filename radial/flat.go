package radial

import (
	"fmt"
	"math"
)

// renormalization threshold of the downward recurrence
const millerBig = 1e250

// NewFlatTable tabulates the flat-space basis functions, the spherical
// Bessel functions j_l(x), for the given multipoles on the uniform grid
// x in [xMin, xMax] with samplingRate points per 2 pi oscillation.
//
// Values come from the three-term recurrence: upward from j_0, j_1 where
// that is stable (x well above the largest l), downward with Miller
// normalization otherwise. First derivatives use the recurrence
// j_l' = j_{l-1} - (l+1)/x j_l; second derivatives follow from the ODE.
func NewFlatTable(ls []int, xMin, xMax, samplingRate, phiMinAbs float64) (*UniformTable, error) {
	if len(ls) == 0 || xMin <= 0 || xMax <= xMin || samplingRate <= 0 {
		return nil, fmt.Errorf("x in [%g, %g], sampling %g: %w", xMin, xMax, samplingRate, ErrBadTable)
	}

	lMax := ls[len(ls)-1]
	for i, l := range ls {
		if l < 0 || (i > 0 && l <= ls[i-1]) {
			return nil, fmt.Errorf("multipole list not increasing at %d: %w", i, ErrBadTable)
		}
	}

	dx := 2. * math.Pi / samplingRate
	n := int(math.Ceil((xMax-xMin)/dx)) + 1

	phi := make([][]float64, len(ls))
	dphi := make([][]float64, len(ls))
	d2 := make([][]float64, len(ls))
	for il := range ls {
		phi[il] = make([]float64, n)
		dphi[il] = make([]float64, n)
		d2[il] = make([]float64, n)
	}

	// scratch holds j_l for every l at one x
	top := lMax + 50 + int(12.*math.Cbrt(float64(lMax)+1.))
	scratch := make([]float64, top+1)
	epoch := make([]int, top+1)

	for jx := 0; jx < n; jx++ {
		x := xMin + float64(jx)*dx
		sphericalBessels(x, lMax, top, scratch, epoch)

		for il, l := range ls {
			jl := scratch[l]
			jlm1 := 0.
			if l >= 1 {
				jlm1 = scratch[l-1]
			}
			phi[il][jx] = jl
			dphi[il][jx] = jlm1 - (float64(l)+1.)/x*jl
			d2[il][jx] = -2./x*dphi[il][jx] - (1.-float64(l)*(float64(l)+1.)/(x*x))*jl
		}
	}

	return NewUniformTable(1., ls, xMin, dx, phi, dphi, d2, phiMinAbs, false)
}

// sphericalBessels fills scratch[0..lMax] with j_l(x). top is the start
// order of the downward recurrence; epoch is renormalization scratch.
func sphericalBessels(x float64, lMax, top int, scratch []float64, epoch []int) {
	j0 := math.Sin(x) / x
	j1 := j0/x - math.Cos(x)/x

	// upward recurrence is stable while l stays below x
	if float64(lMax)+20. < x {
		scratch[0] = j0
		if lMax >= 1 {
			scratch[1] = j1
		}
		for l := 1; l < lMax; l++ {
			scratch[l+1] = (2.*float64(l)+1.)/x*scratch[l] - scratch[l-1]
		}
		return
	}

	// downward Miller recurrence with deferred renormalization
	renorms := 0
	jp1, jc := 0., 1.
	for l := top; l >= 1; l-- {
		scratch[l] = jc
		epoch[l] = renorms
		jm1 := (2.*float64(l)+1.)/x*jc - jp1
		jp1, jc = jc, jm1
		if math.Abs(jc) > millerBig {
			jc /= millerBig
			jp1 /= millerBig
			renorms++
		}
	}
	scratch[0] = jc
	epoch[0] = renorms

	// entries stored before the last renormalization are smaller by at
	// least 1/millerBig relative to the surviving scale: negligible
	for l := 0; l <= top; l++ {
		if epoch[l] != renorms {
			scratch[l] = 0.
		}
	}

	// normalize against whichever of j_0, j_1 is away from a zero
	var norm float64
	if math.Abs(j0) >= math.Abs(j1) {
		norm = j0 / scratch[0]
	} else {
		norm = j1 / scratch[1]
	}
	for l := 0; l <= lMax; l++ {
		scratch[l] *= norm
	}
}
