package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/phys"
	"github.com/san-kum/orbsim/internal/vec"
)

func pair(t *testing.T) *body.Registry {
	t.Helper()
	reg := body.NewRegistry(2)
	a, err := body.New(vec.Vec3{X: 1}, vec.Vec3{X: 2}, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := body.New(vec.Vec3{X: -1}, vec.Vec3{X: -2}, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	reg.Add(a)
	reg.Add(b)
	return reg
}

func TestKineticEnergyAveragesSamples(t *testing.T) {
	reg := pair(t)
	m := NewKineticEnergy()

	want := reg.TotalKineticEnergy()
	m.Observe(reg, nil, 0)
	m.Observe(reg, nil, 1)

	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("constant energy should average to itself: got %f, want %f", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMomentumDriftZeroForSymmetricPair(t *testing.T) {
	reg := pair(t)
	m := NewMomentumDrift()

	m.Observe(reg, nil, 0)
	// equal and opposite momenta: drift stays zero however often observed
	m.Observe(reg, nil, 1)
	if m.Value() != 0 {
		t.Errorf("unchanged momentum drifted by %e", m.Value())
	}

	reg.At(0).Vel.X = 5
	m.Observe(reg, nil, 2)
	if m.Value() == 0 {
		t.Error("momentum change not detected")
	}
}

func TestEnergyDriftRelative(t *testing.T) {
	reg := pair(t)
	m := NewEnergyDrift()

	m.Observe(reg, nil, 0)
	if m.Value() != 0 {
		t.Errorf("first observation must anchor drift at 0, got %e", m.Value())
	}

	reg.At(0).Vel = reg.At(0).Vel.Scale(2)
	m.Observe(reg, nil, 1)
	if m.Value() <= 0 {
		t.Error("quadrupled kinetic energy not seen as drift")
	}
}

func TestContactCountTotals(t *testing.T) {
	reg := pair(t)
	m := NewContactCount()

	m.Observe(reg, []phys.Contact{{A: 0, B: 1}}, 0)
	m.Observe(reg, nil, 1)
	m.Observe(reg, []phys.Contact{{A: 0, B: 1}, {A: 0, B: 1}}, 2)

	if m.Value() != 3 {
		t.Errorf("expected 3 contacts total, got %v", m.Value())
	}
}

func TestMaxPenetrationMeasuresOverlap(t *testing.T) {
	reg := body.NewRegistry(2)
	a, _ := body.New(vec.Vec3{X: 0.75}, vec.Vec3{}, 1.0)
	b, _ := body.New(vec.Vec3{X: -0.75}, vec.Vec3{}, 1.0)
	reg.Add(a)
	reg.Add(b)

	m := NewMaxPenetration()
	m.Observe(reg, []phys.Contact{{A: 0, B: 1}}, 0)

	// radii sum 2, separation 1.5
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("penetration: got %f, want 0.5", m.Value())
	}
}

func TestDefaultSet(t *testing.T) {
	set := Default()
	if len(set) != 5 {
		t.Fatalf("expected 5 default metrics, got %d", len(set))
	}
	names := map[string]bool{}
	for _, m := range set {
		names[m.Name()] = true
	}
	for _, want := range []string{"kinetic_energy", "energy_drift", "momentum_drift", "contacts", "max_penetration"} {
		if !names[want] {
			t.Errorf("missing default metric %q", want)
		}
	}
}
