package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-spray-simulator/pkg/core"
)

// Params is the JSON record of the parameters a run actually used
type Params struct {
	SprayWidth     float64 `json:"spray_width"`
	SprayRange     float64 `json:"spray_range"`
	SprayDensity   int     `json:"spray_density"`
	PaintIntensity float64 `json:"paint_intensity"`
	NozzleDistance float64 `json:"nozzle_distance"`
	FanAngle       float64 `json:"fan_angle"`
	ParticleSpeed  float64 `json:"particle_speed"`
	WallWidth      float64 `json:"wall_width"`
	WallHeight     float64 `json:"wall_height"`
	Resolution     int     `json:"resolution"`
	SpreadRadius   int     `json:"spread_radius"`
	SubSteps       int     `json:"sub_steps"`
	Duration       float64 `json:"duration"`
	Dt             float64 `json:"dt"`
	Frames         int     `json:"frames"`
	Seed           int64   `json:"seed"`
}

// NewParams builds the params record from a spray config and run settings
func NewParams(config core.SprayConfig, duration, dt float64, frames int, seed int64) Params {
	return Params{
		SprayWidth:     config.SprayWidth,
		SprayRange:     config.SprayRange,
		SprayDensity:   config.SprayDensity,
		PaintIntensity: config.PaintIntensity,
		NozzleDistance: config.NozzleDistance,
		FanAngle:       config.FanAngle,
		ParticleSpeed:  config.ParticleSpeed,
		WallWidth:      config.WallWidth,
		WallHeight:     config.WallHeight,
		Resolution:     config.Resolution,
		SpreadRadius:   config.SpreadRadius,
		SubSteps:       config.SubSteps,
		Duration:       duration,
		Dt:             dt,
		Frames:         frames,
		Seed:           seed,
	}
}

// Save writes the params record as indented JSON
func (p Params) Save(filename string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
