package config

import (
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-spray-simulator/pkg/core"
	"github.com/df07/go-spray-simulator/pkg/spray"
)

// RunConfig controls the outer simulation run
type RunConfig struct {
	Duration  float64 // Simulated duration in seconds
	Dt        float64 // Frame time step in seconds
	Seed      int64   // Base seed for per-frame randomness
	Workers   int     // Parallel workers (0 = CPU count)
	OutputDir string  // Root directory for textures, scenes and params
}

// Config is the on-disk TOML form of a full simulation setup
type Config struct {
	Spray core.SprayConfig
	Sweep spray.SweepConfig
	Run   RunConfig
}

// Default returns the tuned baseline profile: a focused fan close to the
// wall, sized for interactive runs
func Default() Config {
	sprayConfig := core.DefaultSprayConfig()
	sprayConfig.SprayWidth = 0.4
	sprayConfig.SprayDensity = 300
	sprayConfig.FanAngle = 20.0
	sprayConfig.NozzleDistance = 0.6

	return Config{
		Spray: sprayConfig,
		Sweep: spray.DefaultSweepConfig(),
		Run: RunConfig{
			Duration:  15.0,
			Dt:        0.1,
			OutputDir: "spray_simulation_output",
		},
	}
}

// Load reads a TOML config file over the defaults and validates it
func Load(filename string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Save writes the config as TOML
func (c Config) Save(filename string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

// Validate checks the whole configuration
func (c Config) Validate() error {
	if err := c.Spray.Validate(); err != nil {
		return err
	}
	if c.Run.Duration <= 0 {
		return fmt.Errorf("run duration must be positive, got %g", c.Run.Duration)
	}
	if c.Run.Dt <= 0 {
		return fmt.Errorf("time step must be positive, got %g", c.Run.Dt)
	}
	return nil
}

// Frames returns the number of frames the run covers
func (c Config) Frames() int {
	return int(math.Round(c.Run.Duration / c.Run.Dt))
}
