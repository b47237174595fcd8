// Package scene constructs body populations for simulation runs. All
// randomness comes from an injected source so a seed reproduces the
// exact initial configuration.
package scene

import (
	"fmt"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/vec"
)

const (
	// The two planets carry the original scenario's fixed state.
	planetRadius = 1.0
	planetOffset = 5.0
	planetSpeed  = 0.75

	// Perlin field shape for turbulent velocity initialization.
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = 3
)

// Params describes a scene. Zero values are filled by Defaults.
type Params struct {
	// Bodies is the number of small bodies besides the two planets.
	Bodies int
	// Spread is the edge length of the cube the small bodies start in.
	Spread float64
	// Speed bounds each random velocity component.
	Speed float64
	// MinRadius and MaxRadius bound the random small-body radii.
	MinRadius float64
	MaxRadius float64
	// Turbulent draws initial velocities from a Perlin noise field
	// sampled at each body's position instead of per-component noise.
	Turbulent bool
	// Planets includes the two fixed large bodies.
	Planets bool
}

func Defaults() Params {
	return Params{
		Bodies:    2000,
		Spread:    5.0,
		Speed:     1.0,
		MinRadius: 0.01,
		MaxRadius: 0.11,
		Planets:   true,
	}
}

// Build creates a closed registry: two planets with fixed state plus
// Params.Bodies randomized small bodies drawn from rng.
func Build(p Params, rng *rand.Rand) (*body.Registry, error) {
	if p.Bodies < 0 {
		return nil, fmt.Errorf("scene: body count must be non-negative, got %d", p.Bodies)
	}
	if p.MinRadius <= 0 || p.MaxRadius < p.MinRadius {
		return nil, fmt.Errorf("scene: bad radius range [%g, %g]", p.MinRadius, p.MaxRadius)
	}

	n := p.Bodies
	if p.Planets {
		n += 2
	}
	reg := body.NewRegistry(n)

	if p.Planets {
		a, err := body.New(
			vec.Vec3{Y: planetOffset},
			vec.Vec3{X: -planetSpeed},
			planetRadius)
		if err != nil {
			return nil, err
		}
		b, err := body.New(
			vec.Vec3{Y: -planetOffset},
			vec.Vec3{X: planetSpeed},
			planetRadius)
		if err != nil {
			return nil, err
		}
		reg.Add(a)
		reg.Add(b)
	}

	var field *perlin.Perlin
	if p.Turbulent {
		field = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, rng.Int63())
	}

	for i := 0; i < p.Bodies; i++ {
		pos := vec.Vec3{
			X: rng.Float64()*p.Spread - p.Spread/2,
			Y: rng.Float64()*p.Spread - p.Spread/2,
			Z: rng.Float64()*p.Spread - p.Spread/2,
		}

		var vel vec.Vec3
		if p.Turbulent {
			vel = fieldVelocity(field, pos, p.Speed)
		} else {
			vel = vec.Vec3{
				X: rng.Float64() * p.Speed,
				Y: rng.Float64() * p.Speed,
				Z: rng.Float64() * p.Speed,
			}
		}

		radius := p.MinRadius + (p.MaxRadius-p.MinRadius)*rng.Float64()
		b, err := body.New(pos, vel, radius)
		if err != nil {
			return nil, err
		}
		reg.Add(b)
	}

	return reg, nil
}

// fieldVelocity samples the noise field at three offset points so the
// components decorrelate while neighbors still move coherently.
func fieldVelocity(field *perlin.Perlin, pos vec.Vec3, speed float64) vec.Vec3 {
	return vec.Vec3{
		X: field.Noise3D(pos.X, pos.Y, pos.Z) * speed,
		Y: field.Noise3D(pos.Y+31.7, pos.Z, pos.X) * speed,
		Z: field.Noise3D(pos.Z, pos.X+67.3, pos.Y) * speed,
	}
}
