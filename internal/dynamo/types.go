package dynamo

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// DOF is the number of degrees of freedom of a rigid body.
const DOF = 6

// Vector6 holds a generalized 6-DOF quantity: three linear components
// followed by three angular components.
type Vector6 [DOF]float64

func NewVector6(linear, angular r3.Vector) Vector6 {
	return Vector6{linear.X, linear.Y, linear.Z, angular.X, angular.Y, angular.Z}
}

// Vector6From copies the first six elements of v. Shorter vectors are
// zero-padded.
func Vector6From(v mat.Vector) Vector6 {
	var out Vector6
	n := v.Len()
	if n > DOF {
		n = DOF
	}
	for i := 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}
	return out
}

func (v Vector6) Linear() r3.Vector  { return r3.Vector{X: v[0], Y: v[1], Z: v[2]} }
func (v Vector6) Angular() r3.Vector { return r3.Vector{X: v[3], Y: v[4], Z: v[5]} }

func (v Vector6) HasNaN() bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

func (v Vector6) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector6) Norm() float64 {
	return mat.Norm(v.VecDense(), 2)
}

func (v Vector6) Add(other Vector6) Vector6 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

func (v Vector6) Sub(other Vector6) Vector6 {
	for i := range v {
		v[i] -= other[i]
	}
	return v
}

func (v Vector6) Scale(factor float64) Vector6 {
	for i := range v {
		v[i] *= factor
	}
	return v
}

// Abs returns the element-wise absolute value.
func (v Vector6) Abs() Vector6 {
	for i := range v {
		v[i] = math.Abs(v[i])
	}
	return v
}

func (v Vector6) Dot(other Vector6) float64 {
	return mat.Dot(v.VecDense(), other.VecDense())
}

// VecDense returns a gonum vector backed by a copy of v.
func (v Vector6) VecDense() *mat.VecDense {
	data := make([]float64, DOF)
	copy(data, v[:])
	return mat.NewVecDense(DOF, data)
}

// Matrix6 is a dense 6x6 matrix stored by value, so assigning it copies it.
type Matrix6 [DOF][DOF]float64

func Diagonal6(d Vector6) Matrix6 {
	var m Matrix6
	for i := range d {
		m[i][i] = d[i]
	}
	return m
}

// Matrix6From copies a 6x6 gonum matrix. It returns ErrDimensionMismatch for
// any other shape.
func Matrix6From(a mat.Matrix) (Matrix6, error) {
	var m Matrix6
	r, c := a.Dims()
	if r != DOF || c != DOF {
		return m, ErrDimensionMismatch
	}
	for i := 0; i < DOF; i++ {
		for j := 0; j < DOF; j++ {
			m[i][j] = a.At(i, j)
		}
	}
	return m, nil
}

// Dense returns a gonum matrix backed by a copy of m.
func (m Matrix6) Dense() *mat.Dense {
	data := make([]float64, 0, DOF*DOF)
	for i := range m {
		data = append(data, m[i][:]...)
	}
	return mat.NewDense(DOF, DOF, data)
}

func (m Matrix6) MulVec(v Vector6) Vector6 {
	var out mat.VecDense
	out.MulVec(m.Dense(), v.VecDense())
	return Vector6From(&out)
}

func (m Matrix6) Mul(other Matrix6) Matrix6 {
	var out mat.Dense
	out.Mul(m.Dense(), other.Dense())
	p, _ := Matrix6From(&out)
	return p
}

func (m Matrix6) Add(other Matrix6) Matrix6 {
	for i := range m {
		for j := range m[i] {
			m[i][j] += other[i][j]
		}
	}
	return m
}

func (m Matrix6) Scale(factor float64) Matrix6 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= factor
		}
	}
	return m
}

func (m Matrix6) Diagonal() Vector6 {
	var d Vector6
	for i := range d {
		d[i] = m[i][i]
	}
	return d
}

// IsDiagonal reports whether every off-diagonal element is zero.
func (m Matrix6) IsDiagonal() bool {
	for i := range m {
		for j := range m[i] {
			if i != j && m[i][j] != 0 {
				return false
			}
		}
	}
	return true
}

// IsValid reports whether every element is finite.
func (m Matrix6) IsValid() bool {
	for i := range m {
		for _, x := range m[i] {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}
