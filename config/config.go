// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Particles ParticlesConfig `yaml:"particles"`
	Workers   WorkersConfig   `yaml:"workers"`
	Run       RunConfig       `yaml:"run"`
	Screen    ScreenConfig    `yaml:"screen"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds enclosure dimensions.
type WorldConfig struct {
	EnclosureSize float64 `yaml:"enclosure_size"` // Side length of the square enclosure
}

// ParticlesConfig holds particle population parameters.
type ParticlesConfig struct {
	Count              int     `yaml:"count"`
	CollisionThreshold float64 `yaml:"collision_threshold"` // Inclusive collision distance
}

// WorkersConfig holds worker pool parameters.
// Chunk size doubles as the comparison granularity: only particles inside the
// same chunk are ever checked against each other.
type WorkersConfig struct {
	Count     int `yaml:"count"`      // Fixed pool size
	ChunkSize int `yaml:"chunk_size"` // Particles per chunk (0 = same as count)
}

// RunConfig holds run loop parameters.
type RunConfig struct {
	DurationSec float64 `yaml:"duration_sec"` // Wall-clock run length
	MaxTicks    int64   `yaml:"max_ticks"`    // Stop after N ticks (0 = duration only)
}

// ScreenConfig holds display settings for graphical mode.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks     int `yaml:"window_ticks"`      // Ticks per stats window
	PerfWindowTicks int `yaml:"perf_window_ticks"` // Rolling perf window size
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ThresholdSq float64       // Particles.CollisionThreshold squared
	ChunkSize   int           // Effective chunk size (Workers.ChunkSize or Workers.Count)
	Duration    time.Duration // Run.DurationSec as a Duration
	ScreenW32   float32       // Screen.Width as float32
	ScreenH32   float32       // Screen.Height as float32
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
// If path is empty, only embedded defaults are used. The result is validated
// before derived values are computed.
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects parameter combinations the simulation has no defined
// behavior for. A degenerate enclosure in particular would make the
// rejection-sampling move loop spin forever, so it is refused here instead
// of being handled at runtime.
func (c *Config) Validate() error {
	if c.World.EnclosureSize <= 0 {
		return fmt.Errorf("world.enclosure_size must be positive, got %g", c.World.EnclosureSize)
	}
	if c.Particles.Count <= 0 {
		return fmt.Errorf("particles.count must be positive, got %d", c.Particles.Count)
	}
	if c.Particles.CollisionThreshold < 0 {
		return fmt.Errorf("particles.collision_threshold must be non-negative, got %g", c.Particles.CollisionThreshold)
	}
	if c.Workers.Count <= 0 {
		return fmt.Errorf("workers.count must be positive, got %d", c.Workers.Count)
	}
	if c.Workers.ChunkSize < 0 {
		return fmt.Errorf("workers.chunk_size must be non-negative, got %d", c.Workers.ChunkSize)
	}
	if c.Run.DurationSec < 0 {
		return fmt.Errorf("run.duration_sec must be non-negative, got %g", c.Run.DurationSec)
	}
	if c.Run.MaxTicks < 0 {
		return fmt.Errorf("run.max_ticks must be non-negative, got %d", c.Run.MaxTicks)
	}
	if c.Run.DurationSec == 0 && c.Run.MaxTicks == 0 {
		return fmt.Errorf("run has no stop condition: set run.duration_sec or run.max_ticks")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ThresholdSq = c.Particles.CollisionThreshold * c.Particles.CollisionThreshold
	c.Derived.Duration = time.Duration(c.Run.DurationSec * float64(time.Second))
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Chunk size defaults to the worker count, coupling comparison
	// granularity to the degree of parallelism.
	c.Derived.ChunkSize = c.Workers.ChunkSize
	if c.Derived.ChunkSize == 0 {
		c.Derived.ChunkSize = c.Workers.Count
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
