package uwv

import "github.com/san-kum/uwvdyn/internal/dynamo"

// Coriolis returns the rigid-body Coriolis/centripetal term H(M·v)·v. With
// p = M·v split into linear and angular parts,
//
//	H(p)·v = [ p.lin × v.ang ; p.lin × v.lin + p.ang × v.ang ]
//
// and the term is its negation.
func Coriolis(inertia dynamo.Matrix6, velocity dynamo.Vector6) dynamo.Vector6 {
	p := inertia.MulVec(velocity)
	pl, pa := p.Linear(), p.Angular()
	vl, va := velocity.Linear(), velocity.Angular()

	h := dynamo.NewVector6(
		pl.Cross(va),
		pl.Cross(vl).Add(pa.Cross(va)),
	)
	return h.Scale(-1)
}
