package sim

import (
	"fmt"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/phys"
)

// Metric observes the registry after every step and reduces it to a
// single reported value.
type Metric interface {
	Name() string
	Observe(reg *body.Registry, contacts []phys.Contact, t float64)
	Value() float64
	Reset()
}

// Observer receives every post-step state, e.g. for live display.
type Observer interface {
	OnStep(reg *body.Registry, contacts []phys.Contact, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	// Workers parallelizes the pairwise passes when above one.
	Workers int
	// SampleEvery records every k-th state snapshot (1 = all).
	SampleEvery int
	// ValidateState stops the run when a step produces NaN/Inf.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Result collects a run's recorded trajectory and diagnostics. States
// holds flattened per-body snapshots (px, py, pz, vx, vy, vz per body)
// at the sampled times. ContactCounts has one entry per step;
// SnapshotContacts is aligned with States and Times instead, carrying
// the contact count of the step each snapshot was taken at (0 for the
// initial snapshot, which predates any step).
type Result struct {
	States           [][]float64
	Times            []float64
	ContactCounts    []int
	SnapshotContacts []int
	Metrics          map[string]float64
	Seed             int64
	StepsTaken       int
	TotalContacts    int
	Errors           []error
}

// StepError marks the step at which a run went numerically bad.
type StepError struct {
	Step    int
	Time    float64
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
