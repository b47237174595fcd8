package phys

import (
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/vec"
)

// DefaultMinSeparation is the distance floor below which a pair's
// center line has no usable direction. Pairs closer than this are
// clamped (gravity) or skipped (resolution) so a degenerate pair never
// injects NaN into the shared state.
const DefaultMinSeparation = 1e-9

// pairGravity returns the shared per-pair term dir·G/r²·dt. Body a's
// velocity decreases by this scaled with b's mass, b's increases by it
// scaled with a's mass, so the pair's momentum change cancels exactly.
func pairGravity(a, b *body.Body, g, minSep, dt float64) vec.Vec3 {
	v := a.Pos.Sub(b.Pos)
	r := v.Len()
	if r == 0 {
		// coincident centers: no direction, skip the pair
		return vec.Vec3{}
	}
	dir := v.Scale(1 / r)
	if r < minSep {
		r = minSep
	}
	return dir.Scale(g / (r * r) * dt)
}

// ApplyGravity updates every body's velocity from pairwise Newtonian
// attraction using this step's positions. Positions are not touched, so
// the in-place updates are equivalent to summing per-pair deltas.
func ApplyGravity(reg *body.Registry, g, minSep, dt float64) {
	reg.EachPair(func(i, j int, a, b *body.Body) {
		d := pairGravity(a, b, g, minSep, dt)
		a.Vel = a.Vel.Sub(d.Scale(b.Mass))
		b.Vel = b.Vel.Add(d.Scale(a.Mass))
	})
}
