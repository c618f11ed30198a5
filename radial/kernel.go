package radial

import (
	"fmt"

	"github.com/katalvlaran/transferfn/grid"
)

// Kernel names one of the eleven closed-form radial kernel variants. The
// variant is fixed once per (mode, observable class) pair; every windowed
// or potential-type observable projects with the plain ScalarT0 kernel.
type Kernel int

const (
	ScalarT0 Kernel = iota // Phi
	ScalarT1               // first derivative
	ScalarT2               // quadrupole combination of Phi and d2Phi
	ScalarE                // E polarization, csc^2 weighted
	VectorT1
	VectorT2
	VectorE
	VectorB
	TensorT2
	TensorE
	TensorB
)

// String implements fmt.Stringer.
func (k Kernel) String() string {
	switch k {
	case ScalarT0:
		return "scalar-t0"
	case ScalarT1:
		return "scalar-t1"
	case ScalarT2:
		return "scalar-t2"
	case ScalarE:
		return "scalar-e"
	case VectorT1:
		return "vector-t1"
	case VectorT2:
		return "vector-t2"
	case VectorE:
		return "vector-e"
	case VectorB:
		return "vector-b"
	case TensorT2:
		return "tensor-t2"
	case TensorE:
		return "tensor-e"
	case TensorB:
		return "tensor-b"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// KernelFor maps an observable class within a mode onto its kernel
// variant. Classes without a CMB-specific kernel (lensing potentials,
// densities) fall back to ScalarT0.
func KernelFor(m grid.Mode, class grid.TypeClass) (Kernel, error) {
	switch m {
	case grid.Scalar:
		switch class {
		case grid.ClassT0, grid.ClassLensCMB, grid.ClassDensity, grid.ClassLensing:
			return ScalarT0, nil
		case grid.ClassT1:
			return ScalarT1, nil
		case grid.ClassT2:
			return ScalarT2, nil
		case grid.ClassE:
			return ScalarE, nil
		}

	case grid.Vector:
		switch class {
		case grid.ClassT1:
			return VectorT1, nil
		case grid.ClassT2:
			return VectorT2, nil
		case grid.ClassE:
			return VectorE, nil
		case grid.ClassB:
			return VectorB, nil
		}

	case grid.Tensor:
		switch class {
		case grid.ClassT2:
			return TensorT2, nil
		case grid.ClassE:
			return TensorE, nil
		case grid.ClassB:
			return TensorB, nil
		}
	}

	return 0, fmt.Errorf("mode %s class %s: %w", m, class, ErrUnknownKernel)
}
