package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Common errors returned by the Runner
var (
	ErrRunnerStopped = errors.New("task runner is stopped")
	ErrPanic         = errors.New("task panicked")
)

// Runner starts every submitted task on its own goroutine. There is no queue
// and no concurrency limit: a task that never returns only stalls itself.
type Runner struct {
	mu         sync.Mutex
	stopped    bool
	wg         sync.WaitGroup
	inFlight   atomic.Int64 // written under mu, in step with wg
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewRunner creates a new Runner
func NewRunner(logger *slog.Logger) *Runner {
	r := &Runner{
		logger: logger.With("component", "task_runner"),
	}
	r.errHandler = func(task Task, err error) {
		// Default error handler just logs the error
		r.logger.Error("task execution failed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
	}
	return r
}

// SetErrorHandler allows setting a custom error handler function
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errHandler = handler
}

// Submit starts the task. The task runs with a context detached from ctx's
// cancellation: once started it always runs to completion. After Stop, only
// tasks that are still in flight may submit follow-up work.
func (r *Runner) Submit(ctx context.Context, task Task) error {
	r.mu.Lock()
	if r.stopped && r.inFlight.Load() == 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: cannot submit %s", ErrRunnerStopped, task.Type())
	}
	r.wg.Add(1)
	r.inFlight.Add(1)
	handler := r.errHandler
	r.mu.Unlock()

	go r.run(context.WithoutCancel(ctx), task, handler)
	return nil
}

// InFlight returns the number of tasks that have started but not finished.
func (r *Runner) InFlight() int {
	return int(r.inFlight.Load())
}

// Stop rejects new work and waits for in-flight tasks, including any follow-up
// tasks they submit, to finish or for ctx to be done, whichever comes first.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Debug("task runner drained")
		return nil
	case <-ctx.Done():
		r.logger.Warn("task runner stop timed out", "in_flight", r.InFlight())
		return ctx.Err()
	}
}

// run executes a single task and reports failures
func (r *Runner) run(ctx context.Context, task Task, errHandler func(Task, error)) {
	defer r.finish()

	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
	)
	logger.Debug("task started")

	err := r.execute(ctx, task)
	if err != nil {
		errHandler(task, err)
		return
	}

	logger.Debug("task completed")
}

// finish retires a task. Holding mu keeps Submit from seeing a positive
// in-flight count after Stop's Wait has returned.
func (r *Runner) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight.Add(-1)
	r.wg.Done()
}

// execute calls task.Execute, turning a panic into an error
func (r *Runner) execute(ctx context.Context, task Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return task.Execute(ctx)
}
