package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/cardflow/internal/intent"
	"github.com/phrazzld/cardflow/internal/task"
)

// ErrClosed is returned by Put after Close.
var ErrClosed = errors.New("intent bus is closed")

// Handler processes one intent occurrence. Handlers run concurrently with each
// other; a returned error is logged and does not affect other handlers.
type Handler interface {
	HandleIntent(ctx context.Context, in *intent.Intent) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, in *intent.Intent) error

// HandleIntent calls f(ctx, in).
func (f HandlerFunc) HandleIntent(ctx context.Context, in *intent.Intent) error {
	return f(ctx, in)
}

// Observer sees every intent synchronously, in the order Put is called for it.
// Observers must be fast and must not call Put.
type Observer interface {
	ObserveIntent(ctx context.Context, in *intent.Intent)
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(ctx context.Context, in *intent.Intent)

// ObserveIntent calls f(ctx, in).
func (f ObserverFunc) ObserveIntent(ctx context.Context, in *intent.Intent) {
	f(ctx, in)
}

// Putter is the emitting half of the bus, the only dependency effect handlers
// need.
type Putter interface {
	Put(ctx context.Context, in *intent.Intent) error
}

// Bus is an in-memory intent bus that dispatches to subscribed handlers.
type Bus struct {
	mu        sync.RWMutex
	handlers  map[intent.Type][]Handler
	observers []Observer
	closed    bool
	runner    *task.Runner
	logger    *slog.Logger
}

// New creates a new Bus running handler invocations on runner.
func New(runner *task.Runner, logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[intent.Type][]Handler),
		runner:   runner,
		logger:   logger.With("component", "intent_bus"),
	}
}

// Subscribe registers handler to run once per intent of type t.
func (b *Bus) Subscribe(t intent.Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], handler)
	b.logger.Debug("registered intent handler",
		"intent_type", t,
		"handler_count", len(b.handlers[t]))
}

// SubscribeAll registers an observer that sees every intent.
func (b *Bus) SubscribeAll(observer Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, observer)
}

// Put publishes an intent. Observers are notified before Put returns; each
// matching handler is started on its own task and may finish at any time.
func (b *Bus) Put(ctx context.Context, in *intent.Intent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("%w: dropping %s", ErrClosed, in.Type)
	}
	handlers := make([]Handler, len(b.handlers[in.Type]))
	copy(handlers, b.handlers[in.Type])
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)
	b.mu.RUnlock()

	b.logger.Debug("put intent",
		"intent_id", in.ID,
		"intent_type", in.Type,
		"handler_count", len(handlers))

	for _, o := range observers {
		o.ObserveIntent(ctx, in)
	}

	for _, h := range handlers {
		inv := task.NewInvocation(string(in.Type), b.invoke(h, in))
		if err := b.runner.Submit(ctx, inv); err != nil {
			return fmt.Errorf("failed to start handler for %s: %w", in.Type, err)
		}
	}

	return nil
}

func (b *Bus) invoke(h Handler, in *intent.Intent) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := h.HandleIntent(ctx, in); err != nil {
			b.logger.Error("handler failed to process intent",
				"error", err,
				"intent_id", in.ID,
				"intent_type", in.Type)
			return err
		}
		return nil
	}
}

// Close waits for in-flight handlers, bounded by ctx, then stops accepting
// intents. Handlers still running may put their follow-up intents while the
// bus drains, so no started invocation loses its outcome.
func (b *Bus) Close(ctx context.Context) error {
	err := b.runner.Stop(ctx)

	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to drain intent handlers: %w", err)
	}
	b.logger.Info("intent bus closed")
	return nil
}
