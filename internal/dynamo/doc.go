// Package dynamo provides the numeric value types shared by the vehicle
// dynamics packages.
//
//   - [Vector6]: generalized 6-DOF vector (linear then angular components)
//   - [Matrix6]: dense 6x6 matrix held by value
//   - [Orientation]: body-to-world rotation backed by a quaternion
//
// All three are plain values; copying one never aliases another. Conversions
// to gonum's [mat.VecDense] and [mat.Dense] copy as well.
//
// # Example
//
//	v := dynamo.NewVector6(r3.Vector{X: 1}, r3.Vector{Z: 0.2})
//	R := dynamo.OrientationFromEuler(0, 0, math.Pi/2)
//	world := R.Rotate(v.Linear())
package dynamo
