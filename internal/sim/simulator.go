package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/phys"
)

// Simulator drives a phys.Pipeline over a registry for a configured
// duration. It owns the registry for the run; callers hand it a fully
// built population and read results afterwards.
type Simulator struct {
	reg       *body.Registry
	pipeline  *phys.Pipeline
	metrics   []Metric
	observers []Observer
}

func New(reg *body.Registry, pipeline *phys.Pipeline) *Simulator {
	return &Simulator{
		reg:      reg,
		pipeline: pipeline,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Registry exposes the simulated population, e.g. for observers that
// want to inspect final state.
func (s *Simulator) Registry() *body.Registry { return s.reg }

// Run executes the fixed-dt step loop. dt is the only per-step input;
// the external caller decides how long to run. Cancellation is checked
// between steps, never mid-step.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	s.pipeline.Workers = cfg.Workers

	steps := int(cfg.Duration / cfg.Dt)
	sample := cfg.SampleEvery
	if sample < 1 {
		sample = 1
	}

	result := &Result{
		States:           make([][]float64, 0, steps/sample+1),
		Times:            make([]float64, 0, steps/sample+1),
		ContactCounts:    make([]int, 0, steps),
		SnapshotContacts: make([]int, 0, steps/sample+1),
		Metrics:          make(map[string]float64),
		Seed:             cfg.Seed,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.States = append(result.States, s.reg.Flatten(nil))
	result.Times = append(result.Times, t)
	result.SnapshotContacts = append(result.SnapshotContacts, 0)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		contacts := s.pipeline.Step(s.reg, cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++
		result.TotalContacts += len(contacts)
		result.ContactCounts = append(result.ContactCounts, len(contacts))

		for _, m := range s.metrics {
			m.Observe(s.reg, contacts, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.reg, contacts, t)
		}

		if cfg.ValidateState && !s.reg.IsValid() {
			err := StepError{Step: i, Time: t, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		if (i+1)%sample == 0 {
			result.States = append(result.States, s.reg.Flatten(nil))
			result.Times = append(result.Times, t)
			result.SnapshotContacts = append(result.SnapshotContacts, len(contacts))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
