package body

import "github.com/san-kum/orbsim/internal/vec"

// Registry holds the simulation's body population. The population is
// closed: bodies are added during scene construction and never removed,
// so an index identifies the same body for the lifetime of a run.
type Registry struct {
	bodies []Body
}

func NewRegistry(capacity int) *Registry {
	return &Registry{bodies: make([]Body, 0, capacity)}
}

// Add appends a body and returns its index.
func (r *Registry) Add(b Body) int {
	r.bodies = append(r.bodies, b)
	return len(r.bodies) - 1
}

func (r *Registry) Len() int { return len(r.bodies) }

// At returns a pointer into the registry's backing slice. The pointer
// stays valid because the population is closed after construction.
func (r *Registry) At(i int) *Body { return &r.bodies[i] }

// Each visits every body in index order.
func (r *Registry) Each(fn func(i int, b *Body)) {
	for i := range r.bodies {
		fn(i, &r.bodies[i])
	}
}

// EachPair visits every unique unordered pair of distinct bodies exactly
// once, in (i, j) lexicographic order with i < j.
func (r *Registry) EachPair(fn func(i, j int, a, b *Body)) {
	n := len(r.bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fn(i, j, &r.bodies[i], &r.bodies[j])
		}
	}
}

// PairCount returns the number of unique unordered pairs, n(n-1)/2.
func (r *Registry) PairCount() int {
	n := len(r.bodies)
	return n * (n - 1) / 2
}

// Clone deep-copies the registry. Used to snapshot initial conditions
// for reset and for comparing runs.
func (r *Registry) Clone() *Registry {
	c := make([]Body, len(r.bodies))
	copy(c, r.bodies)
	return &Registry{bodies: c}
}

// IsValid reports whether every body's position and velocity are finite.
func (r *Registry) IsValid() bool {
	for i := range r.bodies {
		if !r.bodies[i].Pos.IsValid() || !r.bodies[i].Vel.IsValid() {
			return false
		}
	}
	return true
}

// TotalMomentum returns the vector sum of m·v over all bodies.
func (r *Registry) TotalMomentum() vec.Vec3 {
	var p vec.Vec3
	for i := range r.bodies {
		p = p.Add(r.bodies[i].Momentum())
	}
	return p
}

// TotalKineticEnergy returns the sum of ½·m·|v|² over all bodies.
func (r *Registry) TotalKineticEnergy() float64 {
	ke := 0.0
	for i := range r.bodies {
		ke += r.bodies[i].KineticEnergy()
	}
	return ke
}

// Flatten appends every body's position and velocity components to dst
// in index order (px, py, pz, vx, vy, vz per body) and returns it.
// Used by the storage layer for state snapshots.
func (r *Registry) Flatten(dst []float64) []float64 {
	for i := range r.bodies {
		b := &r.bodies[i]
		dst = append(dst,
			b.Pos.X, b.Pos.Y, b.Pos.Z,
			b.Vel.X, b.Vel.Y, b.Vel.Z)
	}
	return dst
}
