package uwv

import (
	"fmt"

	"github.com/san-kum/uwvdyn/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

const machineEpsilon = 0x1p-52

// InvertInertia solves M·X = I in the least-squares sense through a thin SVD.
// Singular values below max(rows, cols)·ε·σmax are treated as zero, so a
// singular or badly conditioned M yields its pseudo-inverse rather than Inf.
// M must be finite: the SVD iteration does not terminate on NaN or Inf.
func InvertInertia(inertia dynamo.Matrix6) (dynamo.Matrix6, error) {
	if !inertia.IsValid() {
		return dynamo.Matrix6{}, ErrNonFiniteInertia
	}

	var svd mat.SVD
	if ok := svd.Factorize(inertia.Dense(), mat.SVDThin); !ok {
		return dynamo.Matrix6{}, ErrInertiaInversion
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	// sigma is sorted in decreasing order.
	threshold := 0.0
	if len(sigma) > 0 {
		threshold = float64(dynamo.DOF) * machineEpsilon * sigma[0]
	}

	inv := make([]float64, len(sigma))
	for i, s := range sigma {
		if s > threshold {
			inv[i] = 1 / s
		}
	}

	// M⁺ = V·Σ⁺·Uᵀ
	var vs, pinv mat.Dense
	vs.Mul(&v, mat.NewDiagDense(len(inv), inv))
	pinv.Mul(&vs, u.T())

	out, err := dynamo.Matrix6From(&pinv)
	if err != nil {
		return dynamo.Matrix6{}, fmt.Errorf("%w: %w", ErrInertiaInversion, err)
	}
	return out, nil
}
