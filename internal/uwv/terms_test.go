package uwv

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-10

func assertNear(t *testing.T, want, got dynamo.Vector6, tol float64) {
	t.Helper()
	assert.InDelta(t, 0, got.Sub(want).Norm(), tol, "got %v, want %v", got, want)
}

func identity() dynamo.Matrix6 {
	return dynamo.Diagonal6(dynamo.Vector6{1, 1, 1, 1, 1, 1})
}

// coupledInertia is symmetric positive definite with off-diagonal coupling.
func coupledInertia() dynamo.Matrix6 {
	m := dynamo.Diagonal6(dynamo.Vector6{120, 140, 160, 12, 16, 18})
	m[0][4], m[4][0] = 3, 3
	m[1][3], m[3][1] = -2, -2
	m[2][5], m[5][2] = 1.5, 1.5
	return m
}

func TestLinearDamping(t *testing.T) {
	d := dynamo.Diagonal6(dynamo.Vector6{1, 2, 3, 4, 5, 6})
	got := LinearDamping(d, dynamo.Vector6{1, -1, 1, -1, 1, -1})
	assert.Equal(t, dynamo.Vector6{1, -2, 3, -4, 5, -6}, got)
}

func TestQuadDamping(t *testing.T) {
	d := dynamo.Diagonal6(dynamo.Vector6{1, 2, 3, 4, 5, 6})
	got := QuadDamping(d, dynamo.Vector6{2, -2, 0.5, -0.5, 0, 1})
	assertNear(t, dynamo.Vector6{4, -8, 0.75, -1, 0, 6}, got, eps)
}

func TestSimpleDamping(t *testing.T) {
	lin := identity()
	quad := identity().Scale(2)
	v := dynamo.Vector6{1, -2, 0, 0, 0, 3}

	got, err := SimpleDamping([]dynamo.Matrix6{lin, quad}, v)
	require.NoError(t, err)
	assertNear(t, dynamo.Vector6{3, -10, 0, 0, 0, 21}, got, eps)

	for _, n := range []int{0, 1, 3, 6} {
		_, err := SimpleDamping(make([]dynamo.Matrix6, n), v)
		assert.ErrorIs(t, err, ErrSimpleDampingLength, "len %d", n)
	}
}

func TestGeneralQuadDamping(t *testing.T) {
	matrices := make([]dynamo.Matrix6, dynamo.DOF)
	for i := range matrices {
		matrices[i] = identity().Scale(float64(i + 1))
	}
	v := dynamo.Vector6{1, -1, 0, 0, 2, 0}

	// Σ Dᵢ|vᵢ| = I·(1·1 + 2·1 + 5·2) = 13·I
	got, err := GeneralQuadDamping(matrices, v)
	require.NoError(t, err)
	assertNear(t, v.Scale(13), got, eps)

	_, err = GeneralQuadDamping(matrices[:2], v)
	assert.ErrorIs(t, err, ErrQuadDampingLength)
}

func TestCoriolis(t *testing.T) {
	tests := []struct {
		name    string
		inertia dynamo.Matrix6
		v       dynamo.Vector6
		want    dynamo.Vector6
	}{
		{"zero velocity", coupledInertia(), dynamo.Vector6{}, dynamo.Vector6{}},
		{"pure surge", identity(), dynamo.Vector6{1}, dynamo.Vector6{}},
		{"surge and yaw", identity(), dynamo.Vector6{1, 0, 0, 0, 0, 1}, dynamo.Vector6{0, 1, 0, 0, 0, 0}},
		{"sway and roll", dynamo.Diagonal6(dynamo.Vector6{2, 2, 2, 1, 1, 1}), dynamo.Vector6{0, 1, 0, 1, 0, 0}, dynamo.Vector6{0, 0, 2, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, tt.want, Coriolis(tt.inertia, tt.v), eps)
		})
	}
}

func TestCoriolis_DoesNoWork(t *testing.T) {
	velocities := []dynamo.Vector6{
		{1, 0, 0, 0, 0, 0},
		{0.5, -0.2, 0.1, 0.05, -0.3, 0.4},
		{-2, 1, 3, 1, -1, 0.5},
	}
	for _, v := range velocities {
		assert.InDelta(t, 0, v.Dot(Coriolis(coupledInertia(), v)), 1e-9, "v·C(v)v for v = %v", v)
	}
}

func TestGravityBuoyancy(t *testing.T) {
	cg := r3.Vector{Z: 0.1}
	cb := r3.Vector{Z: -0.1}

	tests := []struct {
		name     string
		o        dynamo.Orientation
		weight   float64
		buoyancy float64
		cg, cb   r3.Vector
		want     dynamo.Vector6
	}{
		{"neutral identity", dynamo.IdentityOrientation(), 100, 100, r3.Vector{}, r3.Vector{}, dynamo.Vector6{}},
		{"neutral rolled", dynamo.OrientationFromEuler(0.7, -0.3, 2), 50, 50, cg, cg, dynamo.Vector6{}},
		{"heavy level", dynamo.IdentityOrientation(), 110, 100, cg, cb, dynamo.Vector6{0, 0, 10, 0, 0, 0}},
		{"heavy inverted", dynamo.OrientationFromEuler(math.Pi, 0, 0), 110, 100, r3.Vector{}, r3.Vector{}, dynamo.Vector6{0, 0, -10, 0, 0, 0}},
		// Rᵀe3 = (0, 1, 0) at +90° roll; (cg·W − cb·B) = (0, 0, 21)
		{"righting moment", dynamo.OrientationFromEuler(math.Pi/2, 0, 0), 110, 100, cg, cb, dynamo.Vector6{0, 10, 0, -21, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GravityBuoyancy(tt.o, tt.weight, tt.buoyancy, tt.cg, tt.cb)
			assertNear(t, tt.want, got, 1e-9)
		})
	}
}

func TestInvertInertia(t *testing.T) {
	m := coupledInertia()
	inv, err := InvertInertia(m)
	require.NoError(t, err)

	prod := m.Mul(inv)
	id := identity()
	for i := range prod {
		for j := range prod[i] {
			require.InDelta(t, id[i][j], prod[i][j], 1e-12, "M·M⁻¹[%d][%d]", i, j)
		}
	}
}

func TestInvertInertia_Singular(t *testing.T) {
	m := dynamo.Diagonal6(dynamo.Vector6{2, 4, 0, 1, 1, 1})
	inv, err := InvertInertia(m)
	require.NoError(t, err)

	assertNear(t, dynamo.Vector6{0.5, 0.25, 0, 1, 1, 1}, inv.Diagonal(), 1e-12)
	assert.True(t, inv.IsValid())
}

func TestInvertInertia_NonFinite(t *testing.T) {
	for name, x := range map[string]float64{
		"NaN":  math.NaN(),
		"+Inf": math.Inf(1),
		"-Inf": math.Inf(-1),
	} {
		t.Run(name, func(t *testing.T) {
			m := coupledInertia()
			m[3][3] = x

			inv, err := InvertInertia(m)
			assert.ErrorIs(t, err, ErrNonFiniteInertia)
			assert.Equal(t, dynamo.Matrix6{}, inv)
		})
	}
}
