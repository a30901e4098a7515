package spray

import "github.com/df07/go-spray-simulator/pkg/core"

// Particle is one ballistic paint droplet. Particles live for a single
// frame: every batch is fully re-emitted, never carried across frames.
type Particle struct {
	Position core.Vec3
	Velocity core.Vec3
	Active   bool // still integrating; cleared on hit or prune
	Hit      bool // crossed the wall plane this frame
}

// NewBatch allocates a particle batch with the given fixed capacity
func NewBatch(count int) []Particle {
	return make([]Particle, count)
}
