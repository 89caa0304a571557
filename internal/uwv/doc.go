// Package uwv implements the rigid-body dynamic model of an underwater
// vehicle with six degrees of freedom.
//
// A [Model] evaluates
//
//	M·a + D(v)·v + C(v)·v + g(R) = τ
//
// forwards with [Model.Acceleration] (simulation) and backwards with
// [Model.Effort] (model-based control). The damping and Coriolis terms are
// chosen by [ModelType]:
//
//   - [Simple]: linear plus quadratic damping
//   - [Intermediate]: Simple plus Coriolis/centripetal coupling
//   - [Complex]: one quadratic damping matrix per DOF plus Coriolis
//
// Restoring forces follow the marine convention, positive z pointing down.
//
// Parameter sets are validated before use. A rejected [Model.SetParameters]
// leaves the model as it was, and evaluation never modifies the model.
//
// # Example
//
//	m := uwv.New()
//	tau, err := m.Effort(accel, velocity, dynamo.IdentityOrientation())
package uwv
