package spray

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-spray-simulator/pkg/core"
)

const (
	// hitTolerance is the max distance from the wall plane for a deposit.
	// Collected hits are projected onto the plane before they get here, so
	// the band only guards against genuinely stray points.
	hitTolerance = 0.2
	// falloffFactor attenuates the intensity deposited on neighbor cells
	falloffFactor = 0.3
)

// spreadOffset is one precomputed neighborhood deposit around a hit cell
type spreadOffset struct {
	dx, dy int
	weight float32 // fraction of the hit intensity deposited at this offset
}

// newSpreadKernel precomputes the falloff offsets within radius cells of a
// hit, excluding the center cell. Weights decay linearly with Euclidean
// distance and vanish at the radius.
func newSpreadKernel(radius int) []spreadOffset {
	if radius <= 0 {
		return nil
	}

	var kernel []spreadOffset
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			distance := math32.Sqrt(float32(dx*dx + dy*dy))
			weight := falloffFactor * (1.0 - distance/float32(radius))
			if weight <= 0 {
				continue
			}
			kernel = append(kernel, spreadOffset{dx: dx, dy: dy, weight: weight})
		}
	}
	return kernel
}

// Accumulator deposits hit intensity into a WallGrid with radial falloff.
// Deposit processes hits in the order given; callers wanting a reproducible
// grid pass hits in a canonical order.
type Accumulator struct {
	grid      *WallGrid
	wallZ     float64
	intensity float32
	kernel    []spreadOffset
}

// NewAccumulator creates an accumulator writing to the given grid
func NewAccumulator(grid *WallGrid, wallZ, intensity float64, spreadRadius int) *Accumulator {
	return &Accumulator{
		grid:      grid,
		wallZ:     wallZ,
		intensity: float32(intensity),
		kernel:    newSpreadKernel(spreadRadius),
	}
}

// Deposit maps each hit point to its texel and accumulates intensity there
// and across the falloff neighborhood. Hits outside the wall tolerance band
// are discarded; texel indices are clamped to the grid.
func (a *Accumulator) Deposit(hits []core.Vec3) {
	resolution := a.grid.Resolution()

	for _, hit := range hits {
		if math32.Abs(float32(hit.Z-a.wallZ)) >= hitTolerance {
			continue
		}

		x, y := a.grid.WorldToTexel(hit)
		a.grid.add(x, y, a.intensity)

		for _, offset := range a.kernel {
			nx, ny := x+offset.dx, y+offset.dy
			if nx < 0 || nx >= resolution || ny < 0 || ny >= resolution {
				continue
			}
			a.grid.add(nx, ny, a.intensity*offset.weight)
		}
	}
}
