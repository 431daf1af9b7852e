package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task
type Status string

// Possible task status values
const (
	StatusPending    Status = "pending"
	StatusRunning    Status = "running"
	StatusTerminated Status = "terminated"
)

// Outcome records how a terminated task ended
type Outcome string

// Possible task outcomes
const (
	OutcomeNone      Outcome = ""
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// Task represents a unit of asynchronous work
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Invocation is a Task wrapping a single function call. It tracks its own
// status so callers can observe the running/terminated transition.
type Invocation struct {
	id     uuid.UUID
	typ    string
	fn     func(ctx context.Context) error
	mu     sync.Mutex
	status Status
	result Outcome
	err    error
	done   chan struct{}
}

// NewInvocation creates a pending invocation of fn.
func NewInvocation(typ string, fn func(ctx context.Context) error) *Invocation {
	return &Invocation{
		id:     uuid.New(),
		typ:    typ,
		fn:     fn,
		status: StatusPending,
		done:   make(chan struct{}),
	}
}

// ID returns the invocation's unique identifier
func (i *Invocation) ID() uuid.UUID {
	return i.id
}

// Type returns the invocation type identifier
func (i *Invocation) Type() string {
	return i.typ
}

// Status returns the current lifecycle state
func (i *Invocation) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

// Outcome returns the outcome and error of a terminated invocation.
func (i *Invocation) Outcome() (Outcome, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.result, i.err
}

// Done is closed once the invocation has terminated.
func (i *Invocation) Done() <-chan struct{} {
	return i.done
}

// Execute runs the wrapped function. A panic is converted into an error so the
// invocation always terminates. Execute must be called at most once.
func (i *Invocation) Execute(ctx context.Context) (err error) {
	i.transition(StatusRunning, OutcomeNone, nil)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		if err != nil {
			i.transition(StatusTerminated, OutcomeFailed, err)
		} else {
			i.transition(StatusTerminated, OutcomeCompleted, nil)
		}
		close(i.done)
	}()

	return i.fn(ctx)
}

func (i *Invocation) transition(s Status, o Outcome, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status = s
	i.result = o
	i.err = err
}
