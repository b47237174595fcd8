package phys

import "github.com/san-kum/orbsim/internal/body"

// Pipeline runs one simulation step as a fixed sequence of passes over
// a registry. It owns no body state; the caller supplies the registry
// and dt every step.
type Pipeline struct {
	// G is the gravitational constant.
	G float64
	// MinSeparation floors pair distances in the gravity pass and
	// skips degenerate pairs in resolution.
	MinSeparation float64
	// Workers above one parallelizes the two pairwise passes.
	Workers int

	contacts []Contact
	scratch  *gravityScratch
}

func NewPipeline(g float64) *Pipeline {
	return &Pipeline{
		G:             g,
		MinSeparation: DefaultMinSeparation,
	}
}

// Step advances the registry by dt: integrate motion, detect overlaps
// against the new positions, accumulate gravity, then resolve contacts
// in emission order. The returned slice is valid until the next Step.
func (p *Pipeline) Step(reg *body.Registry, dt float64) []Contact {
	Integrate(reg, dt)

	if p.Workers > 1 && reg.Len() >= minParallelBodies {
		p.contacts = p.detectParallel(reg, p.contacts[:0])
		p.gravityParallel(reg, dt)
	} else {
		p.contacts = DetectContacts(reg, p.contacts[:0])
		ApplyGravity(reg, p.G, p.MinSeparation, dt)
	}

	ResolveContacts(reg, p.contacts, p.MinSeparation)
	return p.contacts
}
