package driven

import "context"

// Task is a unit of background work identified by the generation it
// belongs to.
type Task struct {
	// GenerationID links the task to its generation record.
	GenerationID string

	// Run executes the task. It receives the queue's base context and
	// must honour cancellation.
	Run func(ctx context.Context) error
}

// TaskQueue executes tasks in the background. The pipeline itself is
// synchronous; any parallelism across generations lives here.
type TaskQueue interface {
	// Enqueue submits a task. Returns domain.ErrQueueClosed after
	// Shutdown.
	Enqueue(t Task) error

	// Shutdown stops accepting tasks and waits for running ones.
	Shutdown(ctx context.Context) error
}
