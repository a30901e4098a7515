package spray

import (
	"context"
	"fmt"

	"github.com/df07/go-spray-simulator/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// frameSeedStride spaces per-frame seeds far enough apart that particle
// streams never collide between frames
const frameSeedStride = 1000

// Options contains simulator knobs beyond the spray parameters
type Options struct {
	Sweep      SweepConfig        // Nozzle sweep pattern
	WallZ      float64            // Wall plane z coordinate
	Seed       int64              // Base seed for per-frame stream derivation
	NumWorkers int                // Parallel workers (0 = use CPU count)
	RangeSize  int                // Particles per worker task (0 = default)
	Streams    core.StreamFactory // Random stream strategy (nil = seeded streams)
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Sweep:     DefaultSweepConfig(),
		WallZ:     0,
		RangeSize: 64,
	}
}

// Simulator runs the spray pipeline frame by frame: advance the nozzle, emit
// a fresh particle batch, integrate it in sub-steps against the wall plane,
// and deposit the frame's hits into the coverage grid.
type Simulator struct {
	config      core.SprayConfig
	options     Options
	grid        *WallGrid
	batch       []Particle
	accumulator *Accumulator
	queue       *HitQueue
	pool        *WorkerPool
	nozzle      NozzleState
	frame       int
	time        float64
	totalHits   int
	logger      core.Logger
}

// NewSimulator validates the configuration and builds a simulator. The
// worker pool is started immediately; call Close when done.
func NewSimulator(config core.SprayConfig, options Options, logger core.Logger) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spray config: %w", err)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if options.Streams == nil {
		options.Streams = core.SeededStreamFactory{}
	}
	if options.RangeSize <= 0 {
		options.RangeSize = 64
	}

	grid := NewWallGrid(config.WallWidth, config.WallHeight, config.Resolution)
	queue := NewHitQueue(config.SprayDensity)
	pool := NewWorkerPool(config, options.Streams, options.WallZ, queue, options.NumWorkers)
	pool.Start()

	return &Simulator{
		config:      config,
		options:     options,
		grid:        grid,
		batch:       NewBatch(config.SprayDensity),
		accumulator: NewAccumulator(grid, options.WallZ, config.PaintIntensity, config.SpreadRadius),
		queue:       queue,
		pool:        pool,
		nozzle:      StartNozzle(options.Sweep, config.NozzleDistance),
		logger:      logger,
	}, nil
}

// Close shuts down the worker pool. The simulator must not be stepped after
// closing.
func (s *Simulator) Close() {
	s.pool.Stop()
}

// Grid returns the coverage grid owned by the simulator
func (s *Simulator) Grid() *WallGrid {
	return s.grid
}

// Nozzle returns the current nozzle state
func (s *Simulator) Nozzle() NozzleState {
	return s.nozzle
}

// Frame returns the number of frames executed so far
func (s *Simulator) Frame() int {
	return s.frame
}

// Time returns the simulation time elapsed so far
func (s *Simulator) Time() float64 {
	return s.time
}

// Config returns the spray configuration
func (s *Simulator) Config() core.SprayConfig {
	return s.config
}

// FrameSeed returns the deterministic seed used for the given frame
func (s *Simulator) FrameSeed(frame int) int64 {
	return s.options.Seed + int64(frame)*frameSeedStride
}

// Step executes one frame: emit and integrate the batch in parallel over
// index ranges, deposit the collected hits, then advance the nozzle.
func (s *Simulator) Step(dt float64) FrameStats {
	seed := s.FrameSeed(s.frame)
	dtSub := dt / float64(s.config.SubSteps)
	emittedFrom := s.nozzle

	// Submit disjoint particle ranges to the pool
	tasks := 0
	for start := 0; start < len(s.batch); start += s.options.RangeSize {
		end := min(start+s.options.RangeSize, len(s.batch))
		s.pool.SubmitTask(RangeTask{
			Start:    start,
			End:      end,
			Batch:    s.batch,
			Nozzle:   emittedFrom,
			Seed:     seed,
			DtSub:    dtSub,
			SubSteps: s.config.SubSteps,
			TaskID:   tasks,
		})
		tasks++
	}

	hits := 0
	for i := 0; i < tasks; i++ {
		result, ok := s.pool.GetResult()
		if !ok {
			break
		}
		hits += result.Hits
	}

	// Drain returns hits in particle-index order, so the grid contents do
	// not depend on the worker count
	s.accumulator.Deposit(s.queue.Drain())

	s.nozzle = AdvanceNozzle(s.nozzle, s.options.Sweep, dt)
	s.frame++
	s.time += dt
	s.totalHits += hits

	return FrameStats{
		Frame:  s.frame - 1,
		Time:   s.time,
		Hits:   hits,
		Nozzle: emittedFrom,
	}
}

// Stats returns run statistics for the frames executed so far
func (s *Simulator) Stats() RunStats {
	return RunStats{
		Frames:           s.frame,
		Time:             s.time,
		TotalHits:        s.totalHits,
		TotalPaint:       s.grid.TotalPaint(),
		CoverageFraction: s.grid.CoverageFraction(paintedThreshold),
	}
}

// FrameResult contains the outcome of one frame for the channel-based API.
// Everything a consumer needs is carried in the result; readers must not
// touch the live grid while a run is in flight.
type FrameResult struct {
	Stats            FrameStats
	Coverage         []float32 // Grid snapshot, nil unless requested
	CoverageFraction float64   // Fraction of cells painted above threshold
	IsLast           bool
}

// RunOptions configures a channel-based run
type RunOptions struct {
	Frames    int
	Dt        float64
	Snapshots bool // Whether to attach a grid snapshot to every result
}

// Run executes frames with channel-based communication. The caller should
// read from the returned channels; cancellation is honored between frames
// only, a started frame always runs to completion.
func (s *Simulator) Run(ctx context.Context, options RunOptions) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		s.logger.Printf("Running %d frames at dt=%.3fs (%d workers)...\n",
			options.Frames, options.Dt, s.pool.GetNumWorkers())

		for frame := 0; frame < options.Frames; frame++ {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			default:
			}

			stats := s.Step(options.Dt)

			result := FrameResult{
				Stats:            stats,
				CoverageFraction: s.grid.CoverageFraction(paintedThreshold),
				IsLast:           frame == options.Frames-1,
			}
			if options.Snapshots {
				result.Coverage = s.grid.Snapshot()
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}
