package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/phys"
	"github.com/san-kum/orbsim/internal/sim"
)

// ContactCount totals the contacts emitted across the run.
type ContactCount struct {
	name  string
	total int
}

func NewContactCount() *ContactCount {
	return &ContactCount{name: "contacts"}
}

func (c *ContactCount) Name() string { return c.name }

func (c *ContactCount) Observe(reg *body.Registry, contacts []phys.Contact, t float64) {
	c.total += len(contacts)
}

func (c *ContactCount) Value() float64 { return float64(c.total) }
func (c *ContactCount) Reset()         { c.total = 0 }

// MaxPenetration records the deepest post-resolution overlap seen in
// the run. Resolution de-penetrates each pair it processes, so values
// well above zero indicate chains of contacts pushing bodies back into
// each other within a single step.
type MaxPenetration struct {
	name string
	max  float64
}

func NewMaxPenetration() *MaxPenetration {
	return &MaxPenetration{name: "max_penetration"}
}

func (m *MaxPenetration) Name() string { return m.name }

func (m *MaxPenetration) Observe(reg *body.Registry, contacts []phys.Contact, t float64) {
	for _, c := range contacts {
		a, b := reg.At(c.A), reg.At(c.B)
		d := a.Radius + b.Radius - a.Pos.Sub(b.Pos).Len()
		m.max = math.Max(m.max, d)
	}
}

func (m *MaxPenetration) Value() float64 { return m.max }
func (m *MaxPenetration) Reset()         { m.max = 0 }

// Default returns the standard diagnostic set for a run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewContactCount(),
		NewMaxPenetration(),
	}
}
