package uwv

import "github.com/san-kum/uwvdyn/internal/dynamo"

func LinearDamping(linear dynamo.Matrix6, velocity dynamo.Vector6) dynamo.Vector6 {
	return linear.MulVec(velocity)
}

// QuadDamping returns D·diag(|v|)·v.
func QuadDamping(quad dynamo.Matrix6, velocity dynamo.Vector6) dynamo.Vector6 {
	abs := velocity.Abs()
	var scaled dynamo.Vector6
	for i := range velocity {
		scaled[i] = abs[i] * velocity[i]
	}
	return quad.MulVec(scaled)
}

// SimpleDamping sums linear and quadratic damping from a [linear, quadratic]
// pair of matrices.
func SimpleDamping(matrices []dynamo.Matrix6, velocity dynamo.Vector6) (dynamo.Vector6, error) {
	if len(matrices) != 2 {
		return dynamo.Vector6{}, ErrSimpleDampingLength
	}
	return LinearDamping(matrices[0], velocity).Add(QuadDamping(matrices[1], velocity)), nil
}

// GeneralQuadDamping returns (Σ Dᵢ·|vᵢ|)·v over one quadratic matrix per DOF.
func GeneralQuadDamping(matrices []dynamo.Matrix6, velocity dynamo.Vector6) (dynamo.Vector6, error) {
	if len(matrices) != dynamo.DOF {
		return dynamo.Vector6{}, ErrQuadDampingLength
	}

	abs := velocity.Abs()
	var damp dynamo.Matrix6
	for i, m := range matrices {
		damp = damp.Add(m.Scale(abs[i]))
	}
	return damp.MulVec(velocity), nil
}
