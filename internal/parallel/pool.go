// Package parallel provides the fan-out primitive the refinement engine
// uses to process independently-owned work items — mutating a batch of
// individuals, or refining a decomposition's route groups — on a worker
// pool while preserving input order in the collected output. Adapted
// from a dynamic-scaling worker pool originally built for parallel goal
// evaluation over a search tree; the task-accounting and panic-safe
// worker loop carry over, generalized from bare `func()` tasks to a
// generic map/collect API over arbitrary item and result types.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when submitting to a pool that has already
// been shut down.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// Pool manages a bounded set of goroutines used to evaluate independent
// work items concurrently.
type Pool struct {
	maxWorkers int
	taskChan   chan func()
	workerWg   sync.WaitGroup
	shutdown   chan struct{}
	once       sync.Once
}

// New creates a pool with the given maximum concurrency. A non-positive
// size defaults to runtime.NumCPU().
func New(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	p := &Pool{
		maxWorkers: maxWorkers,
		taskChan:   make(chan func(), maxWorkers*4),
		shutdown:   make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()
	for {
		select {
		case task, ok := <-p.taskChan:
			if !ok {
				return
			}
			runTask(task)
		case <-p.shutdown:
			return
		}
	}
}

// runTask executes a task, converting a panic into a no-op so one
// misbehaving work item cannot take down the whole pool.
func runTask(task func()) {
	defer func() {
		_ = recover()
	}()
	task()
}

// Submit queues task for execution on the pool's workers.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.shutdown:
		return ErrPoolShutdown
	default:
	}
	select {
	case p.taskChan <- task:
		return nil
	case <-p.shutdown:
		return ErrPoolShutdown
	}
}

// Shutdown stops accepting work and waits for workers to exit. Safe to
// call multiple times.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdown)
		p.workerWg.Wait()
	})
}

// MapOn runs fn over every item on p's workers and returns results in
// input order. Order preservation is what lets the decomposition merge
// step walk partitions "in stable order" deterministically. Items whose
// submission fails (pool already shut down) are evaluated inline on the
// caller, so the result slice is always fully populated.
func MapOn[T, R any](p *Pool, items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	var wg sync.WaitGroup
	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		err := p.Submit(func() {
			defer wg.Done()
			results[i] = fn(item)
		})
		if err != nil {
			results[i] = fn(item)
			wg.Done()
		}
	}
	wg.Wait()
	return results
}

// Map is the engine's parallel-map-and-collect primitive: it runs fn over
// every item concurrently on a transient pool sized to the work, bounded
// by the CPU count, and returns results in input order. A done ctx stops
// further fan-out; remaining items are evaluated inline so every input
// still produces its result — cancellation granularity is one work item,
// matching the refinement loop's "quota polled between units of work"
// model.
func Map[T, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return []R{}
	}

	p := New(maxConcurrency(len(items)))
	defer p.Shutdown()

	if ctx == nil {
		return MapOn(p, items, fn)
	}

	results := make([]R, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		i, item := i, item
		select {
		case <-ctx.Done():
			results[i] = fn(item)
			continue
		default:
		}
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			results[i] = fn(item)
		}); err != nil {
			results[i] = fn(item)
			wg.Done()
		}
	}
	wg.Wait()
	return results
}

func maxConcurrency(n int) int {
	c := runtime.NumCPU()
	if n < c {
		c = n
	}
	if c <= 0 {
		c = 1
	}
	return c
}
