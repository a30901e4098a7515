package spray

import (
	"math"

	"github.com/df07/go-spray-simulator/pkg/core"
)

// emitJitterScale sizes the uniform positional jitter applied to each
// particle's starting point relative to the spray width, so a zero-width
// spray emits from exactly the nozzle position
const emitJitterScale = 0.2

// Spread axes of the fan, matching a wall in the XY plane
var (
	sprayRight = core.NewVec3(1, 0, 0)
	sprayUp    = core.NewVec3(0, 1, 0)
)

// Emitter generates one batch of spray particles per frame from the nozzle
// state. Each particle draws from an independent random stream keyed by the
// frame seed and its index, so emission is reproducible and can be split
// across any number of workers.
type Emitter struct {
	config  core.SprayConfig
	streams core.StreamFactory
}

// NewEmitter creates an emitter for the given configuration
func NewEmitter(config core.SprayConfig, streams core.StreamFactory) *Emitter {
	return &Emitter{config: config, streams: streams}
}

// Emit fills the whole batch from the nozzle state
func (e *Emitter) Emit(batch []Particle, nozzle NozzleState, seed int64) {
	e.EmitRange(batch, nozzle, seed, 0, len(batch))
}

// EmitRange fills batch[start:end]. Ranges never overlap between callers, so
// parallel emission over disjoint ranges is safe.
func (e *Emitter) EmitRange(batch []Particle, nozzle NozzleState, seed int64, start, end int) {
	for i := start; i < end; i++ {
		sampler := e.streams.Stream(seed, i)

		// Angular deviation within the fan, then lateral spread on the
		// fan axes, renormalized to a unit direction
		angle := sampler.In(-e.config.FanAngle, e.config.FanAngle) * math.Pi / 180.0
		spreadX := sampler.In(-e.config.SprayWidth, e.config.SprayWidth) * 0.5
		spreadY := sampler.In(-e.config.SprayWidth, e.config.SprayWidth) * 0.5

		direction := nozzle.Direction.RotateAboutY(angle).
			Add(sprayRight.Multiply(spreadX)).
			Add(sprayUp.Multiply(spreadY)).
			Normalize()

		jitter := emitJitterScale * e.config.SprayWidth
		offsetX := sampler.In(-jitter, jitter)
		offsetY := sampler.In(-jitter, jitter)

		batch[i] = Particle{
			Position: nozzle.Position.Add(core.NewVec3(offsetX, offsetY, 0)),
			Velocity: direction.Multiply(e.config.ParticleSpeed),
			Active:   true,
			Hit:      false,
		}
	}
}
