package sim

import (
	"fmt"
	"sync"
)

// Task is one unit of work dispatched to the pool. The worker index passed
// in is stable for the lifetime of the pool, so callers can keep per-worker
// state such as RNGs without locking.
type Task func(workerID int)

// job pairs a task with the batch it belongs to.
type job struct {
	task  Task
	batch *sync.WaitGroup
}

// Pool is a fixed-size set of persistent worker goroutines exposing a single
// coordination primitive: submit a batch of tasks and block until every task
// in the batch has finished. There is no cancellation, priority, or per-task
// timeout.
type Pool struct {
	numWorkers int

	workChan chan job       // sends work to workers
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// NewPool creates a pool with the given number of workers. Workers are not
// started until Start (or the first Submit).
func NewPool(numWorkers int) (*Pool, error) {
	if numWorkers <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", numWorkers)
	}
	return &Pool{numWorkers: numWorkers}, nil
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.numWorkers
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	if p.running {
		return
	}

	p.workChan = make(chan job, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop signals all workers to exit and waits for them. Must not be called
// while a batch is in flight.
func (p *Pool) Stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	p.running = false
}

// worker runs in a goroutine, executing jobs until stopped.
func (p *Pool) worker(workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case j, ok := <-p.workChan:
			if !ok {
				return
			}
			j.task(workerID)
			j.batch.Done()
		}
	}
}

// Submit dispatches a batch of tasks and blocks until all of them complete.
// Batches may be larger than the pool; excess tasks queue on the work
// channel. The simulation issues one batch at a time, so batches never
// interleave.
func (p *Pool) Submit(tasks []Task) {
	if len(tasks) == 0 {
		return
	}
	if !p.running {
		p.Start()
	}

	var batch sync.WaitGroup
	batch.Add(len(tasks))
	for _, t := range tasks {
		p.workChan <- job{task: t, batch: &batch}
	}
	batch.Wait()
}
