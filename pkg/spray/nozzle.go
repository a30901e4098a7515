package spray

import "github.com/df07/go-spray-simulator/pkg/core"

// NozzleState holds the spray nozzle position and direction for one frame.
// The direction is a unit vector pointing from the nozzle into the wall.
type NozzleState struct {
	Position  core.Vec3
	Direction core.Vec3
}

// SweepConfig describes the boustrophedon sweep the nozzle follows: constant
// speed along x, wrapping to the left bound and stepping one row up, then
// wrapping back to the bottom row once the top is passed.
type SweepConfig struct {
	Speed   float64 // Sweep speed along x, units per second
	RowStep float64 // Y increment applied on each x wrap
	MinX    float64 // Left bound
	MaxX    float64 // Right bound
	MinY    float64 // Bottom bound
	MaxY    float64 // Top bound
}

// DefaultSweepConfig returns a sweep covering the default 4x3 wall with a
// margin so the fan edge still lands inside the wall
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Speed:   0.8,
		RowStep: 0.4,
		MinX:    -1.8,
		MaxX:    1.8,
		MinY:    -1.2,
		MaxY:    1.2,
	}
}

// StartNozzle returns the nozzle at the sweep origin, facing the wall at the
// configured stand-off distance
func StartNozzle(sweep SweepConfig, nozzleDistance float64) NozzleState {
	return NozzleState{
		Position:  core.NewVec3(sweep.MinX, sweep.MinY, nozzleDistance),
		Direction: core.NewVec3(0, 0, -1),
	}
}

// AdvanceNozzle moves the nozzle one frame along the sweep. It is a pure
// function of the previous state and elapsed time; the direction never
// changes.
func AdvanceNozzle(state NozzleState, sweep SweepConfig, dt float64) NozzleState {
	state.Position.X += sweep.Speed * dt

	if state.Position.X > sweep.MaxX {
		state.Position.X = sweep.MinX
		state.Position.Y += sweep.RowStep
	}
	if state.Position.Y > sweep.MaxY {
		state.Position.Y = sweep.MinY
	}
	return state
}
