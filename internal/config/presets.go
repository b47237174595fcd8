package config

// Presets are named starting points for runs. CLI flags still override
// any preset value.
var Presets = map[string]*Config{
	// the original two-planet scenario with the full debris swarm
	"impact": {
		Dt: 0.01, Duration: 30.0, G: 1.0, MinSeparation: DefaultMinSeparation, SampleEvery: 10,
		Scene: SceneConfig{Bodies: 2000, Spread: 5.0, Speed: 1.0, MinRadius: 0.01, MaxRadius: 0.11, Planets: true},
	},
	// just the two planets, for conservation experiments
	"binary": {
		Dt: 0.001, Duration: 60.0, G: 1.0, MinSeparation: DefaultMinSeparation, SampleEvery: 1,
		Scene: SceneConfig{Bodies: 0, Spread: 5.0, Speed: 0, MinRadius: 0.01, MaxRadius: 0.11, Planets: true},
	},
	// small swarm without planets, coherent turbulent start
	"swarm": {
		Dt: 0.01, Duration: 20.0, G: 1.0, MinSeparation: DefaultMinSeparation, SampleEvery: 5,
		Scene: SceneConfig{Bodies: 500, Spread: 5.0, Speed: 1.0, MinRadius: 0.01, MaxRadius: 0.11, Turbulent: true},
	},
	// slow, sparse configuration that rarely collides
	"calm": {
		Dt: 0.01, Duration: 20.0, G: 0.1, MinSeparation: DefaultMinSeparation, SampleEvery: 5,
		Scene: SceneConfig{Bodies: 200, Spread: 20.0, Speed: 0.1, MinRadius: 0.01, MaxRadius: 0.05, Planets: true},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
