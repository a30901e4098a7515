package spray

import (
	"runtime"
	"sync"

	"github.com/df07/go-spray-simulator/pkg/core"
)

// RangeTask represents one particle index range of a frame for the worker
// pool. Ranges are disjoint, so workers write to the shared batch without
// coordination.
type RangeTask struct {
	Start, End int
	Batch      []Particle // Shared batch slice to emit into and advance
	Nozzle     NozzleState
	Seed       int64
	DtSub      float64
	SubSteps   int
	TaskID     int // For deterministic ordering
}

// RangeResult contains the result from processing one particle range
type RangeResult struct {
	TaskID int
	Hits   int
}

// WorkerPool manages parallel particle emission and integration
type WorkerPool struct {
	taskQueue   chan RangeTask
	resultQueue chan RangeResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual particle range tasks
type Worker struct {
	ID          int
	emitter     *Emitter
	integrator  *Integrator
	queue       *HitQueue
	taskQueue   chan RangeTask
	resultQueue chan RangeResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// All workers share the emitter, integrator and hit queue; both are safe for
// concurrent use over disjoint particle ranges.
func NewWorkerPool(config core.SprayConfig, streams core.StreamFactory, wallZ float64, queue *HitQueue, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	// Worst case of one task per particle for buffer sizing
	maxTasks := config.SprayDensity

	wp := &WorkerPool{
		taskQueue:   make(chan RangeTask, maxTasks),
		resultQueue: make(chan RangeResult, maxTasks),
		numWorkers:  numWorkers,
	}

	emitter := NewEmitter(config, streams)
	integrator := NewIntegrator(wallZ)

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			emitter:     emitter,
			integrator:  integrator,
			queue:       queue,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a particle range task to the worker pool
func (wp *WorkerPool) SubmitTask(task RangeTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed range result
func (wp *WorkerPool) GetResult() (RangeResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop: emit the range, advance it through all
// sub-steps, then enqueue the hits it produced
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.emitter.EmitRange(task.Batch, task.Nozzle, task.Seed, task.Start, task.End)

		for step := 0; step < task.SubSteps; step++ {
			w.integrator.StepRange(task.Batch, task.DtSub, task.Start, task.End)
		}

		hits := w.integrator.CollectRange(task.Batch, task.Start, task.End, w.queue)

		w.resultQueue <- RangeResult{
			TaskID: task.TaskID,
			Hits:   hits,
		}
	}
}
