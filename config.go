package fractalworlds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for world generation and the
// ecosystem simulation.
type Config struct {
	*GenConfig
	*EcoConfig
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		GenConfig: NewGenConfig(),
		EcoConfig: NewEcoConfig(),
	}
}

// GenConfig holds all configuration options for terrain, hydrology,
// vegetation and structure generation.
type GenConfig struct {
	WorldSize         int     `yaml:"world_size"`         // grid edge length in cells
	FractalIterations int     `yaml:"fractal_iterations"` // noise octaves for the height field
	Roughness         float64 `yaml:"terrain_roughness"`  // 0 rolling hills .. 1 jagged peaks
	WaterLevel        float64 `yaml:"water_level"`        // height below which cells are water
	TreeDensity       float64 `yaml:"tree_density"`       // forest patch probability scale
	CreatureDensity   float64 `yaml:"creature_density"`   // initial population scale
	MagicIntensity    float64 `yaml:"magic_intensity"`    // glows, auroras, magic trees
	Debug             bool    `yaml:"debug"`              // panic on simulation inconsistencies
}

// NewGenConfig returns a new config for world generation.
func NewGenConfig() *GenConfig {
	return &GenConfig{
		WorldSize:         256,
		FractalIterations: 5,
		Roughness:         0.5,
		WaterLevel:        0.36,
		TreeDensity:       0.5,
		CreatureDensity:   0.5,
		MagicIntensity:    0.6,
		Debug:             false,
	}
}

// EcoConfig holds all configuration options for the ecosystem simulation.
type EcoConfig struct {
	NearbyRadius    float64 `yaml:"nearby_radius"`    // perception range in cells
	ThreatRadius    float64 `yaml:"threat_radius"`    // flee trigger range
	HuntRadius      float64 `yaml:"hunt_radius"`      // hunt trigger range
	SocialRadius    float64 `yaml:"social_radius"`    // socialize trigger range
	TerritoryRadius float64 `yaml:"territory_radius"` // defend range around home
	KillDistance    float64 `yaml:"kill_distance"`    // hunt resolution range
	LocalCapacity   int     `yaml:"local_capacity"`   // same-species crowd limit
	MinPopulation   int     `yaml:"min_population"`   // spawn trigger per species
	SpawnChance     float64 `yaml:"spawn_chance"`     // per-adult offspring chance per tick
	MaxAge          int     `yaml:"max_age"`          // ticks before old-age rolls start
}

// NewEcoConfig returns a new config for the ecosystem simulation.
func NewEcoConfig() *EcoConfig {
	return &EcoConfig{
		NearbyRadius:    50,
		ThreatRadius:    40,
		HuntRadius:      35,
		SocialRadius:    25,
		TerritoryRadius: 20,
		KillDistance:    2.0,
		LocalCapacity:   8,
		MinPopulation:   2,
		SpawnChance:     0.25,
		MaxAge:          1200,
	}
}

// Validate checks every field against its allowed range and returns a
// ConfigError naming the first offender. Both sub-configs must be set.
func (cfg *Config) Validate() error {
	checks := []struct {
		field    string
		value    float64
		min, max float64
	}{
		{"world_size", float64(cfg.WorldSize), 64, 1024},
		{"fractal_iterations", float64(cfg.FractalIterations), 1, 16},
		{"terrain_roughness", cfg.Roughness, 0, 1},
		{"water_level", cfg.WaterLevel, 0, 1},
		{"tree_density", cfg.TreeDensity, 0, 1},
		{"creature_density", cfg.CreatureDensity, 0, 1},
		{"magic_intensity", cfg.MagicIntensity, 0, 1},
		{"nearby_radius", cfg.NearbyRadius, 1, 4096},
		{"threat_radius", cfg.ThreatRadius, 1, 4096},
		{"hunt_radius", cfg.HuntRadius, 1, 4096},
		{"social_radius", cfg.SocialRadius, 1, 4096},
		{"territory_radius", cfg.TerritoryRadius, 1, 4096},
		{"kill_distance", cfg.KillDistance, 0.1, 64},
		{"local_capacity", float64(cfg.LocalCapacity), 1, 4096},
		{"min_population", float64(cfg.MinPopulation), 0, 64},
		{"spawn_chance", cfg.SpawnChance, 0, 1},
		{"max_age", float64(cfg.MaxAge), 1, 1 << 20},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return &ConfigError{Field: c.field, Value: c.value, Min: c.min, Max: c.max}
		}
	}
	return nil
}

// fileConfig mirrors Config with value embeds so the YAML document stays
// flat. yaml.v3 cannot inline pointer embeds.
type fileConfig struct {
	GenConfig `yaml:",inline"`
	EcoConfig `yaml:",inline"`
}

// LoadConfig reads a YAML file over the defaults: keys absent from the file
// keep their default values. The result is validated before it is returned.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{GenConfig: *cfg.GenConfig, EcoConfig: *cfg.EcoConfig}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	*cfg.GenConfig = fc.GenConfig
	*cfg.EcoConfig = fc.EcoConfig
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
