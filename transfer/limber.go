package transfer

import "math"

// parabolaFit fits the second-order polynomial through (x1,y1), (x2,y2),
// (x3,y3) and returns its value and first two derivatives at x.
func parabolaFit(x1, x2, x3, x, y1, y2, y3 float64) (s, ds, dds float64) {
	dy1 := (y2 - y1) / (x2 - x1)
	dy2 := (y3 - y2) / (x3 - x2)

	a := (dy2 - dy1) / (x3 - x1)
	b := dy1 - a*(x1+x2)
	c := y1 - (a*x1+b)*x1

	s = (a*x+b)*x + c
	ds = 2.*a*x + b
	dds = 2. * a

	return s, ds, dds
}

// limberFirstOrder evaluates the first-order Limber approximation
//
//	Delta_l(k) ~ sqrt(pi/(2l+1)) S(tau_peak) / k
//
// with the source read off at the peak of the projection kernel,
// k(tau0-tau) = l+1/2. The interpolated quantity is the product
// S*(tau0-tau), regular at the observer where lensing sources diverge.
func limberFirstOrder(l int, k float64, t0mt, src []float64) float64 {
	n := len(t0mt)
	lf := float64(l)
	xL := (lf + 0.5) / k

	// the parabola needs three samples
	if n < 3 || xL > t0mt[0] || xL < t0mt[n-1] {
		return 0.
	}

	i := 1
	for t0mt[i] > xL && i < n-2 {
		i++
	}

	y3 := src[i+1] * t0mt[i+1]
	if i == n-2 {
		// the last sample sits at the observer where src is stored as zero;
		// S*(tau0-tau) is constant there to very good approximation
		y3 = src[i] * t0mt[i]
	}

	s, _, _ := parabolaFit(t0mt[i-1], t0mt[i], t0mt[i+1], xL,
		src[i-1]*t0mt[i-1], src[i]*t0mt[i], y3)

	return math.Sqrt(math.Pi/(2.*lf+1.)) * s / (lf + 0.5)
}

// LimberSecondOrder evaluates the second-order Limber approximation,
// which corrects the first order with the source derivatives at the peak
// (LoVerde & Afshordi 2008). Exposed for callers that trade the exact
// integration for speed on broad kernels.
func LimberSecondOrder(l int, k float64, t0mt, src []float64) float64 {
	n := len(t0mt)
	lf := float64(l)
	xL := (lf + 0.5) / k

	if n < 3 || xL > t0mt[0] || xL < t0mt[n-1] {
		return 0.
	}

	i := 1
	for t0mt[i] > xL && i < n-2 {
		i++
	}

	s, ds, dds := parabolaFit(t0mt[i-1], t0mt[i], t0mt[i+1], xL,
		src[i-1], src[i], src[i+1])

	twoL1 := 2.*lf + 1.

	return math.Sqrt(math.Pi/twoL1) / k *
		((1.-1.5/(twoL1*twoL1))*s + ds/k/twoL1 - 0.5*dds/(k*k))
}
