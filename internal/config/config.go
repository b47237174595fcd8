package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = 0.01
	DefaultDuration      = 10.0
	DefaultG             = 1.0
	DefaultBodies        = 2000
	DefaultSpread        = 5.0
	DefaultSpeed         = 1.0
	DefaultMinRadius     = 0.01
	DefaultMaxRadius     = 0.11
	DefaultMinSeparation = 1e-9
)

type Config struct {
	Dt            float64     `yaml:"dt"`
	Duration      float64     `yaml:"duration"`
	Seed          int64       `yaml:"seed"`
	G             float64     `yaml:"g"`
	MinSeparation float64     `yaml:"min_separation"`
	Workers       int         `yaml:"workers"`
	SampleEvery   int         `yaml:"sample_every"`
	Scene         SceneConfig `yaml:"scene"`
}

type SceneConfig struct {
	Bodies    int     `yaml:"bodies"`
	Spread    float64 `yaml:"spread"`
	Speed     float64 `yaml:"speed"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	Turbulent bool    `yaml:"turbulent"`
	Planets   bool    `yaml:"planets"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		G:             DefaultG,
		MinSeparation: DefaultMinSeparation,
		SampleEvery:   1,
		Scene: SceneConfig{
			Bodies:    DefaultBodies,
			Spread:    DefaultSpread,
			Speed:     DefaultSpeed,
			MinRadius: DefaultMinRadius,
			MaxRadius: DefaultMaxRadius,
			Planets:   true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.G < 0 {
		return fmt.Errorf("g must be non-negative, got %g", c.G)
	}
	if c.Scene.Bodies < 0 {
		return fmt.Errorf("scene bodies must be non-negative, got %d", c.Scene.Bodies)
	}
	if c.Scene.MinRadius <= 0 || c.Scene.MaxRadius < c.Scene.MinRadius {
		return fmt.Errorf("bad radius range [%g, %g]", c.Scene.MinRadius, c.Scene.MaxRadius)
	}
	return nil
}
