// Package config provides configuration loading and access for propagation
// runs.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Model     ModelConfig     `yaml:"model"`
	Time      TimeConfig      `yaml:"time"`
	Source    SourceConfig    `yaml:"source"`
	Run       RunConfig       `yaml:"run"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds model grid dimensions.
type GridConfig struct {
	Size  int     `yaml:"size"`  // Interior cells per side (square model)
	DX    float64 `yaml:"dx"`    // Spatial sample interval (m)
	Align int     `yaml:"align"` // Row stride alignment in float32 elements (0 = none)
}

// ModelConfig holds velocity model generation parameters.
type ModelConfig struct {
	Kind            string  `yaml:"kind"` // uniform | random | smooth
	MinVelocity     float64 `yaml:"min_velocity"`
	MaxVelocity     float64 `yaml:"max_velocity"`
	UniformVelocity float64 `yaml:"uniform_velocity"`
	NoiseScale      float64 `yaml:"noise_scale"` // Smooth-model noise frequency
}

// TimeConfig holds time stepping parameters.
type TimeConfig struct {
	DT    float64 `yaml:"dt"` // Seconds; 0 derives 0.6*dx/max_velocity
	Steps int     `yaml:"steps"`
}

// SourceConfig holds source wavelet parameters.
type SourceConfig struct {
	PeakFrequency float64 `yaml:"peak_frequency"` // Hz
	PeakTime      float64 `yaml:"peak_time"`      // Seconds
	X             int     `yaml:"x"`              // Interior column; -1 = center
	Y             int     `yaml:"y"`              // Interior row; -1 = center
}

// RunConfig holds execution parameters.
type RunConfig struct {
	Kernel  string `yaml:"kernel"`  // loop | unrolled
	Workers int    `yaml:"workers"` // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Rolling window in steps
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SourceX int // Effective source column (center applied)
	SourceY int // Effective source row (center applied)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.ComputeDerived()

	return cfg, nil
}

// ComputeDerived calculates values derived from the loaded config. Call it
// again after mutating Grid or Source fields so the derived values stay
// consistent.
func (c *Config) ComputeDerived() {
	c.Derived.SourceX = c.Source.X
	if c.Derived.SourceX < 0 {
		c.Derived.SourceX = c.Grid.Size / 2
	}
	c.Derived.SourceY = c.Source.Y
	if c.Derived.SourceY < 0 {
		c.Derived.SourceY = c.Grid.Size / 2
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
