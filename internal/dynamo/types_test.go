package dynamo

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func identity() Matrix6 {
	return Diagonal6(Vector6{1, 1, 1, 1, 1, 1})
}

func TestVector6_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		v      Vector6
		valid  bool
		hasNaN bool
	}{
		{"zeros", Vector6{}, true, false},
		{"normal", Vector6{1, 2, 3, 4, 5, 6}, true, false},
		{"with NaN", Vector6{1, math.NaN()}, false, true},
		{"with +Inf", Vector6{0, 0, 0, 0, 0, math.Inf(1)}, false, false},
		{"with -Inf", Vector6{math.Inf(-1)}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.v.IsValid())
			assert.Equal(t, tt.hasNaN, tt.v.HasNaN())
		})
	}
}

func TestVector6_Norm(t *testing.T) {
	tests := []struct {
		v        Vector6
		expected float64
	}{
		{Vector6{3, 4}, 5.0},
		{Vector6{0, 0, 0, 0, 0, 1}, 1.0},
		{Vector6{}, 0.0},
		{Vector6{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, tt.v.Norm(), 1e-10, "Norm(%v)", tt.v)
	}
}

func TestVector6_Arithmetic(t *testing.T) {
	a := Vector6{1, 2, 3, 4, 5, 6}
	b := Vector6{6, 5, 4, 3, 2, 1}

	assert.Equal(t, Vector6{7, 7, 7, 7, 7, 7}, a.Add(b))
	assert.Equal(t, Vector6{5, 3, 1, -1, -3, -5}, b.Sub(a))
	assert.Equal(t, Vector6{2, 4, 6, 8, 10, 12}, a.Scale(2))
	assert.Equal(t, Vector6{1, 2, 3}, Vector6{-1, 2, -3}.Abs())
	assert.Equal(t, 56.0, a.Dot(b))
	assert.Equal(t, Vector6{1, 2, 3, 4, 5, 6}, a, "arithmetic mutated its receiver")
}

func TestVector6_LinearAngular(t *testing.T) {
	v := NewVector6(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 4, Y: 5, Z: 6})
	require.Equal(t, Vector6{1, 2, 3, 4, 5, 6}, v)
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, v.Linear())
	assert.Equal(t, r3.Vector{X: 4, Y: 5, Z: 6}, v.Angular())
}

func TestVector6_VecDenseCopies(t *testing.T) {
	v := Vector6{1, 2, 3, 4, 5, 6}
	d := v.VecDense()
	d.SetVec(0, 99)
	assert.Equal(t, 1.0, v[0], "VecDense aliases the vector")

	assert.Equal(t, Vector6{7, 8}, Vector6From(mat.NewVecDense(2, []float64{7, 8})))
}

func TestMatrix6_MulVec(t *testing.T) {
	m := Diagonal6(Vector6{1, 2, 3, 4, 5, 6})
	m[0][5] = 1

	assert.Equal(t, Vector6{2, 2, 3, 4, 5, 6}, m.MulVec(Vector6{1, 1, 1, 1, 1, 1}))
}

func TestMatrix6_Arithmetic(t *testing.T) {
	id := identity()
	assert.True(t, id.IsDiagonal())
	assert.Equal(t, Vector6{3, 3, 3, 3, 3, 3}, id.Scale(3).Diagonal())

	m := Diagonal6(Vector6{1, 2, 3, 4, 5, 6})
	m[1][0] = 2
	assert.False(t, m.IsDiagonal(), "off-diagonal element ignored")
	assert.Equal(t, m, m.Mul(id))
	assert.Equal(t, Vector6{2, 3, 4, 5, 6, 7}, m.Add(id).Diagonal())
}

func TestMatrix6_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		valid bool
	}{
		{"finite", 7, true},
		{"NaN", math.NaN(), false},
		{"+Inf", math.Inf(1), false},
		{"-Inf", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := identity()
			m[5][2] = tt.x
			assert.Equal(t, tt.valid, m.IsValid())
		})
	}
}

func TestMatrix6From(t *testing.T) {
	m, err := Matrix6From(identity().Dense())
	require.NoError(t, err)
	assert.Equal(t, identity(), m)

	_, err = Matrix6From(mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
