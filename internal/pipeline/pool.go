package pipeline

import "sync"

// workerPool bounds the number of concurrently evaluating goroutines.
// Evaluation is pure computation over read-only config, so no coordination
// beyond the semaphore is needed.
type workerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
}

func newWorkerPool(maxWorkers int) *workerPool {
	return &workerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit enqueues a job for execution in the pool.
func (wp *workerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *workerPool) Wait() {
	wp.wg.Wait()
}
