package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// PixelTask asks a worker to render one pixel
type PixelTask struct {
	Index int // Row-major pixel index, y*width + x
}

// WorkerPool renders pixels in parallel. Every pixel owns a disjoint
// 4-byte slot of the output buffer, so workers write without locking.
type WorkerPool struct {
	taskQueue  chan PixelTask
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
}

// Worker handles individual pixel tasks with its own sampler
type Worker struct {
	ID         int
	scene      *scene.Scene
	integrator integrator.Integrator
	sampler    *core.StreamSampler
	buffer     []byte
	width      int
	taskQueue  chan PixelTask
	pixels     int // Pixels rendered by this worker
}

// NewWorkerPool creates a worker pool that writes into buffer. numWorkers
// <= 0 uses one worker per CPU.
func NewWorkerPool(sc *scene.Scene, integ integrator.Integrator, buffer []byte, numWorkers int, seed uint64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:  make(chan PixelTask, numWorkers*64),
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:         i,
			scene:      sc,
			integrator: integ,
			sampler:    core.NewStreamSampler(seed),
			buffer:     buffer,
			width:      sc.Camera.Width(),
			taskQueue:  wp.taskQueue,
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

// SubmitTask submits a pixel task to the worker pool
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// Stop closes the queue and waits for every submitted pixel to be written
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// PixelsRendered returns how many pixels each worker rendered. Only valid after Stop.
func (wp *WorkerPool) PixelsRendered() []int {
	counts := make([]int, len(wp.workers))
	for i, worker := range wp.workers {
		counts[i] = worker.pixels
	}
	return counts
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		x, y := task.Index%w.width, task.Index/w.width
		c := ToneMap(w.integrator.PixelColor(w.scene, x, y, w.sampler))

		offset := task.Index * 4
		w.buffer[offset] = c.R
		w.buffer[offset+1] = c.G
		w.buffer[offset+2] = c.B
		w.buffer[offset+3] = c.A
		w.pixels++
	}
}
