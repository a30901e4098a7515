package core

import "fmt"

// SprayConfig contains the immutable parameters of a spray simulation.
// Validate must pass before a simulator is constructed from it.
type SprayConfig struct {
	SprayWidth     float64 // Width of spray fan at 1 unit distance
	SprayRange     float64 // Maximum spray distance
	SprayDensity   int     // Number of spray particles per frame
	PaintIntensity float64 // Paint accumulation per particle hit
	NozzleDistance float64 // Distance from nozzle to wall
	FanAngle       float64 // Spray fan half-angle in degrees
	ParticleSpeed  float64 // Speed of emitted particles
	WallWidth      float64 // Physical wall width
	WallHeight     float64 // Physical wall height
	Resolution     int     // Coverage grid resolution (cells per side)
	SpreadRadius   int     // Falloff radius around a hit, in grid cells
	SubSteps       int     // Integration sub-steps per frame
}

// DefaultSprayConfig returns sensible default values
func DefaultSprayConfig() SprayConfig {
	return SprayConfig{
		SprayWidth:     0.5,
		SprayRange:     2.0,
		SprayDensity:   500,
		PaintIntensity: 0.15,
		NozzleDistance: 0.8,
		FanAngle:       25.0,
		ParticleSpeed:  8.0,
		WallWidth:      4.0,
		WallHeight:     3.0,
		Resolution:     128,
		SpreadRadius:   2,
		SubSteps:       5,
	}
}

// Validate checks configuration invariants, failing fast before any
// simulation state is created
func (c SprayConfig) Validate() error {
	if c.WallWidth <= 0 || c.WallHeight <= 0 {
		return fmt.Errorf("wall dimensions must be positive, got %gx%g", c.WallWidth, c.WallHeight)
	}
	if c.Resolution <= 0 {
		return fmt.Errorf("grid resolution must be positive, got %d", c.Resolution)
	}
	if c.SprayDensity <= 0 {
		return fmt.Errorf("spray density must be positive, got %d", c.SprayDensity)
	}
	if c.FanAngle < 0 {
		return fmt.Errorf("fan angle must not be negative, got %g", c.FanAngle)
	}
	if c.SpreadRadius < 0 {
		return fmt.Errorf("spread radius must not be negative, got %d", c.SpreadRadius)
	}
	if c.SubSteps <= 0 {
		return fmt.Errorf("sub-steps must be positive, got %d", c.SubSteps)
	}
	return nil
}
