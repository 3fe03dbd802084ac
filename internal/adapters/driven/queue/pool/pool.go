// Package pool implements the TaskQueue port as a fixed worker pool.
// Generations run concurrently up to the worker count; within one
// generation the pipeline stays sequential.
package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// Ensure Queue implements the interface.
var _ driven.TaskQueue = (*Queue)(nil)

// DefaultWorkers is the worker count when none is configured.
const DefaultWorkers = 2

// Queue is a bounded worker pool.
type Queue struct {
	tasks  chan driven.Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts a pool with the given worker count and queue capacity.
// Non-positive values fall back to defaults.
func New(workers, capacity int) *Queue {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if capacity <= 0 {
		capacity = workers * 4
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		tasks:  make(chan driven.Task, capacity),
		ctx:    ctx,
		cancel: cancel,
	}
	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker(i)
	}
	return q
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for task := range q.tasks {
		q.runOne(id, task)
	}
}

// runOne executes a task, containing panics so one bad generation never
// takes the pool down.
func (q *Queue) runOne(worker int, task driven.Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker %d: task for generation %s panicked: %v", worker, task.GenerationID, r)
		}
	}()
	logger.Debug("worker %d: running generation %s", worker, task.GenerationID)
	if err := task.Run(q.ctx); err != nil {
		// The task records its own failure; this is for the operator.
		logger.Debug("worker %d: generation %s failed: %v", worker, task.GenerationID, err)
	}
}

// Enqueue submits a task, blocking while the queue is full.
func (q *Queue) Enqueue(t driven.Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("%w: cannot enqueue generation %s", domain.ErrQueueClosed, t.GenerationID)
	}
	q.tasks <- t
	return nil
}

// Shutdown stops accepting tasks and waits for queued ones to finish,
// or until ctx expires, in which case running tasks are cancelled.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		return fmt.Errorf("queue shutdown: %w", ctx.Err())
	}
}
