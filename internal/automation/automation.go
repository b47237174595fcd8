// Package automation runs scripted batches of simulation runs from a
// YAML file, saving each run to storage.
package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/phys"
	"github.com/san-kum/orbsim/internal/scene"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
)

// Batch is a scripted sequence of runs.
type Batch struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Runs        []RunSpec `yaml:"runs"`
}

// RunSpec describes one run. Preset names a starting configuration;
// an inline Config replaces it entirely when present. SaveAs labels
// the stored run.
type RunSpec struct {
	SaveAs string         `yaml:"save_as"`
	Preset string         `yaml:"preset"`
	Config *config.Config `yaml:"config"`
	Seed   int64          `yaml:"seed"`
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(batch.Runs) == 0 {
		return nil, fmt.Errorf("%s: batch has no runs", path)
	}

	return &batch, nil
}

// resolve turns a RunSpec into a validated config.
func (r RunSpec) resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if r.Preset != "" {
		p := config.GetPreset(r.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", r.Preset)
		}
		*cfg = *p
	}
	if r.Config != nil {
		cfg = r.Config
	}
	if r.Seed != 0 {
		cfg.Seed = r.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunBatch executes every run in order and returns the stored run IDs.
// A failing run aborts the batch; earlier runs stay saved.
func RunBatch(ctx context.Context, batch *Batch, st *storage.Store) ([]string, error) {
	runIDs := make([]string, 0, len(batch.Runs))

	for i, spec := range batch.Runs {
		name := spec.SaveAs
		if name == "" {
			name = fmt.Sprintf("%s_%d", batch.Name, i+1)
		}

		cfg, err := spec.resolve()
		if err != nil {
			return runIDs, fmt.Errorf("run %d (%s): %w", i+1, name, err)
		}

		rng := rand.New(rand.NewSource(cfg.Seed))
		reg, err := scene.Build(scene.Params{
			Bodies:    cfg.Scene.Bodies,
			Spread:    cfg.Scene.Spread,
			Speed:     cfg.Scene.Speed,
			MinRadius: cfg.Scene.MinRadius,
			MaxRadius: cfg.Scene.MaxRadius,
			Turbulent: cfg.Scene.Turbulent,
			Planets:   cfg.Scene.Planets,
		}, rng)
		if err != nil {
			return runIDs, fmt.Errorf("run %d (%s): %w", i+1, name, err)
		}

		pipeline := phys.NewPipeline(cfg.G)
		pipeline.MinSeparation = cfg.MinSeparation

		simulator := sim.New(reg, pipeline)
		for _, m := range metrics.Default() {
			simulator.AddMetric(m)
		}

		result, err := simulator.Run(ctx, sim.Config{
			Dt:            cfg.Dt,
			Duration:      cfg.Duration,
			Seed:          cfg.Seed,
			Workers:       cfg.Workers,
			SampleEvery:   cfg.SampleEvery,
			ValidateState: true,
		})
		if err != nil {
			return runIDs, fmt.Errorf("run %d (%s): %w", i+1, name, err)
		}

		runID, err := st.Save(name, cfg.Dt, cfg.Duration, cfg.Seed, cfg.G, reg.Len(), result)
		if err != nil {
			return runIDs, fmt.Errorf("run %d (%s): %w", i+1, name, err)
		}
		runIDs = append(runIDs, runID)
	}

	return runIDs, nil
}
