package spray

import (
	"math"
	"testing"

	"github.com/df07/go-spray-simulator/pkg/core"
)

func TestSpreadKernelWeights(t *testing.T) {
	kernel := newSpreadKernel(2)

	for _, offset := range kernel {
		if offset.dx == 0 && offset.dy == 0 {
			t.Fatalf("Kernel must exclude the center cell")
		}
		distance := math.Sqrt(float64(offset.dx*offset.dx + offset.dy*offset.dy))
		expected := falloffFactor * (1.0 - distance/2.0)
		if math.Abs(float64(offset.weight)-expected) > 1e-6 {
			t.Errorf("Offset (%d,%d) weight %v, expected %v", offset.dx, offset.dy, offset.weight, expected)
		}
		if offset.weight <= 0 || offset.weight >= 1 {
			t.Errorf("Offset (%d,%d) weight %v out of (0,1)", offset.dx, offset.dy, offset.weight)
		}
	}

	// Radius 2 keeps only the 8 direct neighbors: the linear falloff
	// vanishes at distance 2 and beyond
	if len(kernel) != 8 {
		t.Errorf("Expected 8 kernel offsets for radius 2, got %d", len(kernel))
	}
}

func TestSpreadKernelZeroRadius(t *testing.T) {
	if kernel := newSpreadKernel(0); kernel != nil {
		t.Errorf("Zero radius should yield an empty kernel, got %d offsets", len(kernel))
	}
}

func TestAccumulatorPrimaryDeposit(t *testing.T) {
	grid := NewWallGrid(4, 3, 128)
	acc := NewAccumulator(grid, 0, 0.15, 2)

	acc.Deposit([]core.Vec3{core.NewVec3(0, 0, -0.05)})

	if math.Abs(float64(grid.At(64, 64))-0.15) > 1e-6 {
		t.Errorf("Primary cell should hold the full intensity, got %v", grid.At(64, 64))
	}

	// Direct neighbor gets the attenuated falloff deposit
	expected := 0.15 * falloffFactor * (1.0 - 1.0/2.0)
	if math.Abs(float64(grid.At(65, 64))-float64(expected)) > 1e-6 {
		t.Errorf("Neighbor cell should hold %v, got %v", expected, grid.At(65, 64))
	}

	// Cells beyond the spread radius stay untouched
	if grid.At(67, 64) != 0 {
		t.Errorf("Cell outside the spread radius was painted: %v", grid.At(67, 64))
	}
}

func TestAccumulatorDiscardsHitsOutsideToleranceBand(t *testing.T) {
	grid := NewWallGrid(4, 3, 128)
	acc := NewAccumulator(grid, 0, 0.15, 2)

	acc.Deposit([]core.Vec3{core.NewVec3(0, 0, 0.5)})

	if grid.TotalPaint() != 0 {
		t.Errorf("Hit outside tolerance band must be discarded, grid holds %v", grid.TotalPaint())
	}
}

func TestAccumulatorClampsAtEdges(t *testing.T) {
	grid := NewWallGrid(4, 3, 128)
	acc := NewAccumulator(grid, 0, 0.15, 2)

	// Hit at the wall corner: the primary cell clamps to (0,0) and the
	// out-of-grid part of the neighborhood is skipped
	acc.Deposit([]core.Vec3{core.NewVec3(-2.5, -2.0, 0)})

	if grid.At(0, 0) == 0 {
		t.Errorf("Corner hit should paint the clamped corner cell")
	}
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			if c := grid.At(x, y); c < 0 || c > 1 {
				t.Fatalf("Cell (%d,%d) out of [0,1]: %v", x, y, c)
			}
		}
	}
}

func TestAccumulatorDepositOrderIndependence(t *testing.T) {
	hits := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.02, 0.01, -0.05),
		core.NewVec3(-0.01, 0.02, 0.05),
		core.NewVec3(1.0, -0.5, 0),
	}
	reversed := make([]core.Vec3, len(hits))
	for i, h := range hits {
		reversed[len(hits)-1-i] = h
	}

	gridA := NewWallGrid(4, 3, 64)
	NewAccumulator(gridA, 0, 0.15, 2).Deposit(hits)

	gridB := NewWallGrid(4, 3, 64)
	NewAccumulator(gridB, 0, 0.15, 2).Deposit(reversed)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			a, b := gridA.At(x, y), gridB.At(x, y)
			if math.Abs(float64(a)-float64(b)) > 1e-6 {
				t.Fatalf("Deposit order changed cell (%d,%d): %v vs %v", x, y, a, b)
			}
		}
	}
}

func TestAccumulatorNeverExceedsFullCoverage(t *testing.T) {
	grid := NewWallGrid(4, 3, 32)
	acc := NewAccumulator(grid, 0, 0.3, 2)

	hits := make([]core.Vec3, 100)
	for i := range hits {
		hits[i] = core.NewVec3(0, 0, 0)
	}
	acc.Deposit(hits)

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if c := grid.At(x, y); c > 1 {
				t.Fatalf("Cell (%d,%d) exceeds full coverage: %v", x, y, c)
			}
		}
	}
	if grid.At(16, 16) != 1.0 {
		t.Errorf("Repeatedly hit cell should saturate at 1.0, got %v", grid.At(16, 16))
	}
}

func TestAccumulatorZeroIntensityLeavesGridEmpty(t *testing.T) {
	grid := NewWallGrid(4, 3, 32)
	acc := NewAccumulator(grid, 0, 0, 2)

	acc.Deposit([]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(0.5, 0.5, 0)})

	if grid.TotalPaint() != 0 {
		t.Errorf("Zero intensity deposits should leave the grid empty, got %v", grid.TotalPaint())
	}
}

func TestAccumulatorEmptyHitFrame(t *testing.T) {
	grid := NewWallGrid(4, 3, 32)
	acc := NewAccumulator(grid, 0, 0.15, 2)

	acc.Deposit(nil)

	if grid.TotalPaint() != 0 {
		t.Errorf("Empty hit frame should leave the grid unchanged")
	}
}
