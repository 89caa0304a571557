package dynamo

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is a rotation from the body frame to the world frame, stored as
// a quaternion. Rotations normalize internally; the zero value rotates like
// the identity.
type Orientation struct {
	q quat.Number
}

func IdentityOrientation() Orientation {
	return Orientation{q: quat.Number{Real: 1}}
}

// OrientationFromQuat wraps q = w + xi + yj + zk. q need not be unit length.
func OrientationFromQuat(w, x, y, z float64) Orientation {
	return Orientation{q: quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}}
}

// OrientationFromAxisAngle builds the rotation of angle radians about axis.
func OrientationFromAxisAngle(axis r3.Vector, angle float64) Orientation {
	n := axis.Norm()
	if n == 0 {
		return IdentityOrientation()
	}
	axis = axis.Mul(1 / n)
	s, c := math.Sincos(angle / 2)
	return Orientation{q: quat.Number{Real: c, Imag: s * axis.X, Jmag: s * axis.Y, Kmag: s * axis.Z}}
}

// OrientationFromEuler composes yaw about z, then pitch about y, then roll
// about x (R = Rz·Ry·Rx).
func OrientationFromEuler(roll, pitch, yaw float64) Orientation {
	qx := OrientationFromAxisAngle(r3.Vector{X: 1}, roll).q
	qy := OrientationFromAxisAngle(r3.Vector{Y: 1}, pitch).q
	qz := OrientationFromAxisAngle(r3.Vector{Z: 1}, yaw).q
	return Orientation{q: quat.Mul(qz, quat.Mul(qy, qx))}
}

func (o Orientation) Normalize() Orientation {
	n := quat.Abs(o.q)
	if n == 0 || math.IsNaN(n) {
		return IdentityOrientation()
	}
	return Orientation{q: quat.Scale(1/n, o.q)}
}

func (o Orientation) Inverse() Orientation {
	return Orientation{q: quat.Conj(o.Normalize().q)}
}

// Rotate maps a body-frame vector into the world frame.
func (o Orientation) Rotate(v r3.Vector) r3.Vector {
	q := o.Normalize().q
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// InverseRotate maps a world-frame vector into the body frame.
func (o Orientation) InverseRotate(v r3.Vector) r3.Vector {
	return o.Inverse().Rotate(v)
}

// Euler returns roll, pitch and yaw for the Z-Y-X convention used by
// OrientationFromEuler.
func (o Orientation) Euler() (roll, pitch, yaw float64) {
	q := o.Normalize().q
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	roll = math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	sp := 2 * (w*y - z*x)
	sp = math.Max(-1, math.Min(1, sp))
	pitch = math.Asin(sp)
	yaw = math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return roll, pitch, yaw
}
