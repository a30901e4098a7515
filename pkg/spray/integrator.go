package spray

const (
	// overshootMargin prunes particles once z falls this far past the plane
	overshootMargin = 0.5
	// strayBound prunes particles once their distance from origin exceeds this
	strayBound = 10.0
)

// Integrator advances particle kinematics in sub-steps and detects wall-plane
// crossings. The crossing test is discrete: a particle is a hit when its z
// straddles the plane across one sub-step. A particle that jumps past both
// the plane and the overshoot margin inside a single sub-step is pruned
// without a hit; finer sub-stepping, not swept collision, is the knob for
// that.
type Integrator struct {
	wallZ float64
}

// NewIntegrator creates an integrator for the wall plane at the given z
func NewIntegrator(wallZ float64) *Integrator {
	return &Integrator{wallZ: wallZ}
}

// WallZ returns the wall plane coordinate
func (in *Integrator) WallZ() float64 {
	return in.wallZ
}

// Step advances the whole batch by dt
func (in *Integrator) Step(batch []Particle, dt float64) {
	in.StepRange(batch, dt, 0, len(batch))
}

// StepRange advances batch[start:end] by dt. Inactive particles are skipped.
// Ranges never overlap between callers, so parallel integration over
// disjoint ranges is safe.
func (in *Integrator) StepRange(batch []Particle, dt float64, start, end int) {
	for i := start; i < end; i++ {
		p := &batch[i]
		if !p.Active {
			continue
		}

		oldZ := p.Position.Z
		p.Position = p.Position.Add(p.Velocity.Multiply(dt))

		switch {
		case oldZ > in.wallZ && p.Position.Z <= in.wallZ:
			// Crossed the wall plane this sub-step
			p.Hit = true
			p.Active = false
		case p.Position.Z < in.wallZ-overshootMargin || p.Position.Length() > strayBound:
			// Stray particle, prune without a hit
			p.Active = false
		}
	}
}

// CollectRange enqueues the crossing positions of hit particles in
// batch[start:end] and returns how many were found. Crossing points are
// projected onto the wall plane, so every collected hit deposits paint even
// when a coarse sub-step overshoots the plane.
func (in *Integrator) CollectRange(batch []Particle, start, end int, queue *HitQueue) int {
	hits := 0
	for i := start; i < end; i++ {
		if batch[i].Hit {
			pos := batch[i].Position
			pos.Z = in.wallZ
			queue.Add(Hit{Index: i, Position: pos})
			hits++
		}
	}
	return hits
}
