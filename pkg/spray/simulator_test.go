package spray

import (
	"context"
	"math"
	"testing"

	"github.com/df07/go-spray-simulator/pkg/core"
)

// centerShotConfig aims a single zero-spread particle from the wall center
// axis, one sub-step away from crossing
func centerShotConfig() (core.SprayConfig, Options) {
	config := core.DefaultSprayConfig()
	config.SprayDensity = 1
	config.FanAngle = 0
	config.SprayWidth = 0
	config.ParticleSpeed = 1.0
	config.NozzleDistance = 1.0
	config.SubSteps = 1

	options := DefaultOptions()
	options.Sweep = SweepConfig{Speed: 0, RowStep: 0, MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	options.NumWorkers = 1
	return config, options
}

func TestSimulatorRejectsInvalidConfig(t *testing.T) {
	config := core.DefaultSprayConfig()
	config.Resolution = 0

	sim, err := NewSimulator(config, DefaultOptions(), nil)
	if err == nil {
		sim.Close()
		t.Fatalf("Expected a configuration error, got none")
	}
}

func TestSimulatorCenterShot(t *testing.T) {
	config, options := centerShotConfig()
	sim, err := NewSimulator(config, options, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	// One frame, one sub-step large enough to cross the plane
	stats := sim.Step(1.05)

	if stats.Hits != 1 {
		t.Fatalf("Expected exactly one hit, got %d", stats.Hits)
	}

	grid := sim.Grid()
	center := grid.Resolution() / 2
	found := false
	for dy := -1; dy <= 1 && !found; dy++ {
		for dx := -1; dx <= 1 && !found; dx++ {
			if math.Abs(float64(grid.At(center+dx, center+dy))-config.PaintIntensity) < 1e-6 {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("Expected the full intensity within one cell of grid center, got center value %v", grid.At(center, center))
	}

	// Falloff in the 2-cell neighborhood
	expectedFalloff := float32(config.PaintIntensity) * falloffFactor * 0.5
	if math.Abs(float64(grid.At(center+1, center))-float64(expectedFalloff)) > 1e-6 {
		t.Errorf("Expected falloff %v next to the center, got %v", expectedFalloff, grid.At(center+1, center))
	}
}

func TestSimulatorCoarseStepStillPaints(t *testing.T) {
	config, options := centerShotConfig()
	sim, err := NewSimulator(config, options, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	// A single sub-step overshooting the plane by 0.3 must still deposit:
	// the crossing point is projected onto the wall before accumulation
	stats := sim.Step(1.3)

	if stats.Hits != 1 {
		t.Fatalf("Expected exactly one hit, got %d", stats.Hits)
	}
	if sim.Grid().TotalPaint() == 0 {
		t.Fatalf("Overshot hit deposited no paint")
	}

	grid := sim.Grid()
	center := grid.Resolution() / 2
	found := false
	for dy := -1; dy <= 1 && !found; dy++ {
		for dx := -1; dx <= 1 && !found; dx++ {
			if math.Abs(float64(grid.At(center+dx, center+dy))-config.PaintIntensity) < 1e-6 {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("Expected the full intensity within one cell of grid center, got center value %v", grid.At(center, center))
	}
}

func TestSimulatorZeroFramesLeavesGridEmpty(t *testing.T) {
	config := core.DefaultSprayConfig()
	sim, err := NewSimulator(config, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	if sim.Grid().TotalPaint() != 0 {
		t.Errorf("Grid should be all zeros before any frame")
	}
}

func TestSimulatorZeroIntensityLeavesGridEmpty(t *testing.T) {
	config := core.DefaultSprayConfig()
	config.SprayDensity = 100
	config.NozzleDistance = 0.6
	config.PaintIntensity = 0

	sim, err := NewSimulator(config, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	totalHits := 0
	for i := 0; i < 10; i++ {
		totalHits += sim.Step(0.1).Hits
	}

	if totalHits == 0 {
		t.Fatalf("Expected hits with a close nozzle, got none")
	}
	if sim.Grid().TotalPaint() != 0 {
		t.Errorf("Zero intensity must leave the grid empty, got %v", sim.Grid().TotalPaint())
	}
}

func TestSimulatorDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(numWorkers int) ([]float32, int) {
		config := core.DefaultSprayConfig()
		config.SprayDensity = 200
		config.NozzleDistance = 0.6

		options := DefaultOptions()
		options.NumWorkers = numWorkers
		options.RangeSize = 32

		sim, err := NewSimulator(config, options, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		defer sim.Close()

		hits := 0
		for i := 0; i < 20; i++ {
			hits += sim.Step(0.1).Hits
		}
		return sim.Grid().Snapshot(), hits
	}

	gridSerial, hitsSerial := run(1)
	gridParallel, hitsParallel := run(8)

	if hitsSerial == 0 {
		t.Fatalf("Expected hits in determinism run, got none")
	}
	if hitsSerial != hitsParallel {
		t.Errorf("Hit counts differ across worker counts: %d vs %d", hitsSerial, hitsParallel)
	}
	for i := range gridSerial {
		if gridSerial[i] != gridParallel[i] {
			t.Fatalf("Grid cell %d differs across worker counts: %v vs %v", i, gridSerial[i], gridParallel[i])
		}
	}
}

func TestSimulatorCoverageStaysInRange(t *testing.T) {
	config := core.DefaultSprayConfig()
	config.SprayDensity = 300
	config.NozzleDistance = 0.6
	config.PaintIntensity = 0.5

	sim, err := NewSimulator(config, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	for i := 0; i < 50; i++ {
		sim.Step(0.1)
		for _, c := range sim.Grid().Snapshot() {
			if c < 0 || c > 1 {
				t.Fatalf("Coverage out of [0,1] after frame %d: %v", i, c)
			}
		}
	}
}

func TestSimulatorFrameSeed(t *testing.T) {
	config := core.DefaultSprayConfig()
	options := DefaultOptions()
	options.Seed = 7

	sim, err := NewSimulator(config, options, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	if sim.FrameSeed(0) != 7 {
		t.Errorf("Expected frame 0 seed 7, got %d", sim.FrameSeed(0))
	}
	if sim.FrameSeed(3) != 7+3*frameSeedStride {
		t.Errorf("Expected frame 3 seed %d, got %d", 7+3*frameSeedStride, sim.FrameSeed(3))
	}
}

func TestSimulatorRunChannels(t *testing.T) {
	config := core.DefaultSprayConfig()
	config.SprayDensity = 50
	config.NozzleDistance = 0.6

	sim, err := NewSimulator(config, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	frameChan, errChan := sim.Run(context.Background(), RunOptions{Frames: 5, Dt: 0.1, Snapshots: true})

	frames := 0
	var last FrameResult
	for result := range frameChan {
		frames++
		last = result
		if result.Coverage == nil {
			t.Errorf("Expected a snapshot on frame %d", result.Stats.Frame)
		}
		if result.CoverageFraction < 0 || result.CoverageFraction > 1 {
			t.Errorf("Coverage fraction out of range on frame %d: %v", result.Stats.Frame, result.CoverageFraction)
		}
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected run error: %v", err)
	}

	if frames != 5 {
		t.Errorf("Expected 5 frame results, got %d", frames)
	}
	if !last.IsLast {
		t.Errorf("Final result should be flagged as last")
	}
	if sim.Frame() != 5 {
		t.Errorf("Expected 5 executed frames, got %d", sim.Frame())
	}
}

func TestSimulatorRunHonorsCancellation(t *testing.T) {
	config := core.DefaultSprayConfig()
	sim, err := NewSimulator(config, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer sim.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frameChan, errChan := sim.Run(ctx, RunOptions{Frames: 100, Dt: 0.1})

	for range frameChan {
	}
	if err := <-errChan; err == nil {
		t.Errorf("Expected a cancellation error")
	}
}
