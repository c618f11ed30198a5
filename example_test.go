package transferfn_test

import (
	"fmt"

	"github.com/katalvlaran/transferfn/transfer"
	"github.com/katalvlaran/transferfn/window"
)

// A Gaussian redshift bin: unnormalized amplitude at the mean and the
// sampled support with the low edge clipped at z=0.
func Example_selectionWindow() {
	w := window.Window{Shape: window.Gaussian, Mean: 1., Width: 0.2}

	zMin, zMax := w.Bounds(5., 0.1)
	fmt.Printf("peak %.4f  support [%.0f, %.0f]\n", w.Evaluate(1., 0.1), zMin, zMax)

	// Output:
	// peak 1.9947  support [0, 2]
}

// The second-order Limber approximation evaluated on a linear source
// profile, where the quadratic fit is exact.
func Example_limberSecondOrder() {
	t0mt := []float64{10., 8., 6., 4., 2.}
	src := make([]float64, len(t0mt))
	for i, x := range t0mt {
		src[i] = 0.3 + 0.05*x
	}

	fmt.Printf("%.3f\n", transfer.LimberSecondOrder(2, 0.5, t0mt, src))

	// Output:
	// 0.851
}
