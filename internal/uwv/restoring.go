package uwv

import (
	"github.com/golang/geo/r3"
	"github.com/san-kum/uwvdyn/internal/dynamo"
)

// GravityBuoyancy returns the restoring force and moment in the body frame:
//
//	[ Rᵀ·e3·(W−B) ; (cg·W − cb·B) × Rᵀ·e3 ]
//
// with e3 = (0, 0, 1). Positive z points down, as in the marine literature;
// callers supplying an up-positive frame must convert beforehand.
func GravityBuoyancy(orientation dynamo.Orientation, weight, buoyancy float64, cg, cb r3.Vector) dynamo.Vector6 {
	down := orientation.InverseRotate(r3.Vector{Z: 1})
	force := down.Mul(weight - buoyancy)
	moment := cg.Mul(weight).Sub(cb.Mul(buoyancy)).Cross(down)
	return dynamo.NewVector6(force, moment)
}
