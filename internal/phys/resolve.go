package phys

import "github.com/san-kum/orbsim/internal/body"

// ResolveContacts drains the contact list in emission order. For each
// contact the separation is recomputed from the *current* state, not
// the state at detection time: an earlier contact in the same drain may
// already have moved one of the bodies. Both bodies' position and
// velocity are written back before the next contact is processed.
//
// Per contact: the penetration depth is split between the bodies in
// proportion to the other body's mass fraction, then a 1-D elastic
// impulse along the center line exchanges momentum, conserving both
// momentum and kinetic energy along that axis.
func ResolveContacts(reg *body.Registry, contacts []Contact, minSep float64) {
	for _, c := range contacts {
		a, b := reg.At(c.A), reg.At(c.B)

		v := a.Pos.Sub(b.Pos)
		dist := v.Len()
		if dist < minSep {
			// coincident centers: no collision normal to resolve along
			continue
		}
		d := a.Radius + b.Radius - dist
		dir := v.Scale(1 / dist)

		msum := a.Mass + b.Mass
		ratio := b.Mass / msum
		a.Pos = a.Pos.Add(dir.Scale(ratio * d))
		b.Pos = b.Pos.Sub(dir.Scale((1 - ratio) * d))

		k := a.Vel.Sub(b.Vel).Dot(v) / v.LenSq()
		newA := a.Vel.Sub(v.Scale(2 * b.Mass / msum * k))
		newB := b.Vel.Add(v.Scale(2 * a.Mass / msum * k))
		a.Vel, b.Vel = newA, newB
	}
}
