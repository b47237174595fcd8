package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/vec"
)

// Domain errors for registry construction.
var (
	// ErrInvalidRadius indicates a body constructed with a non-positive radius.
	ErrInvalidRadius = errors.New("body: radius must be positive")
)

// Body is a spherical point mass. Mass is derived from the radius at
// construction (unit density) and never recomputed.
type Body struct {
	Pos    vec.Vec3
	Vel    vec.Vec3
	Radius float64
	Mass   float64
}

// New validates the radius and derives the mass as (4/3)·π·r³.
func New(pos, vel vec.Vec3, radius float64) (Body, error) {
	if radius <= 0 {
		return Body{}, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	return Body{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Mass:   4.0 / 3.0 * math.Pi * radius * radius * radius,
	}, nil
}

func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.LenSq()
}

func (b Body) Momentum() vec.Vec3 {
	return b.Vel.Scale(b.Mass)
}
