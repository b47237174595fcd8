package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/phys"
	"github.com/san-kum/orbsim/internal/vec"
)

// MomentumDrift tracks the largest deviation of total momentum from
// its first observed value. Gravity and elastic resolution both cancel
// per pair, so any sustained growth here points at a pipeline bug
// rather than floating-point noise.
type MomentumDrift struct {
	name     string
	initial  vec.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(reg *body.Registry, contacts []phys.Contact, t float64) {
	p := reg.TotalMomentum()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Len())
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = vec.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}
