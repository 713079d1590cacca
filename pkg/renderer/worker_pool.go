package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"
	"time"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row     int             // Row index, 0 = bottom of the image
	Image   *image.RGBA     // Shared frame; each task writes only its own row
	Context context.Context // Checked before the row is rendered
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row      int
	WorkerID int
	Samples  int
	Error    error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
	stats       WorkerStats
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, maxTasks int, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, maxTasks),   // Buffer for all rows
		resultQueue: make(chan RowResult, maxTasks), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			stats:       WorkerStats{ID: i},
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

// Stop closes the task queue, waits for the workers and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Stats aggregates per-worker statistics. Only valid after Stop has returned.
func (wp *WorkerPool) Stats() RenderStats {
	stats := RenderStats{}
	for _, worker := range wp.workers {
		stats.Workers = append(stats.Workers, worker.stats)
		stats.TotalRows += worker.stats.Rows
		stats.TotalSamples += worker.stats.Samples
	}
	return stats
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if task.Context != nil {
			if err := task.Context.Err(); err != nil {
				w.resultQueue <- RowResult{Row: task.Row, WorkerID: w.ID, Error: err}
				continue
			}
		}

		start := time.Now()
		samples := w.raytracer.RenderRow(task.Row, task.Image)
		w.stats.Rows++
		w.stats.Samples += samples
		w.stats.RenderTime += time.Since(start)

		w.resultQueue <- RowResult{
			Row:      task.Row,
			WorkerID: w.ID,
			Samples:  samples,
		}
	}
}
