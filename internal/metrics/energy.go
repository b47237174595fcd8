package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/phys"
)

// KineticEnergy reports the population's kinetic energy averaged over
// the observed steps.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(reg *body.Registry, contacts []phys.Contact, t float64) {
	k.total += reg.TotalKineticEnergy()
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of kinetic energy
// from its first observed value. Gravity exchanges kinetic and
// potential energy, so this is only a conservation check for runs
// where contacts dominate; it is mainly a stability indicator.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(reg *body.Registry, contacts []phys.Contact, t float64) {
	ke := reg.TotalKineticEnergy()
	if e.samples == 0 {
		e.initial = ke
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(ke-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
