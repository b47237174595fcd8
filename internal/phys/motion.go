package phys

import "github.com/san-kum/orbsim/internal/body"

// Integrate advances every body by its current velocity over dt. No
// cross-body interaction; runs first in the step so the pairwise passes
// see this step's positions.
func Integrate(reg *body.Registry, dt float64) {
	reg.Each(func(i int, b *body.Body) {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	})
}
