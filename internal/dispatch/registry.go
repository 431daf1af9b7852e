package dispatch

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/intent"
)

// Registry errors.
var (
	ErrDuplicateHandler = errors.New("handler already registered for intent type")
	ErrUnknownType      = errors.New("not a card request type")
	ErrNilHandler       = errors.New("handler cannot be nil")
	ErrFrozen           = errors.New("registry is frozen")
)

// Registry maps request types to their handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[intent.Type]bus.Handler
	frozen   bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[intent.Type]bus.Handler)}
}

// Register maps t to h. It rejects empty and non-request types, nil handlers,
// a second handler for the same type, and registration after Freeze.
func (r *Registry) Register(t intent.Type, h bus.Handler) error {
	if t == "" || !intent.IsRequest(t) {
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if h == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %s", ErrFrozen, t)
	}
	if _, ok := r.handlers[t]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, t)
	}
	r.handlers[t] = h
	return nil
}

// RegisterAll registers every entry of handlers, stopping at the first error.
func (r *Registry) RegisterAll(handlers map[intent.Type]bus.Handler) error {
	types := make([]intent.Type, 0, len(handlers))
	for t := range handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		if err := r.Register(t, handlers[t]); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns the handler registered for t.
func (r *Registry) Handler(t intent.Type) (bus.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[t]
	return h, ok
}

// Types returns the registered types in sorted order.
func (r *Registry) Types() []intent.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]intent.Type, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Missing returns the request types that have no handler.
func (r *Registry) Missing() []intent.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []intent.Type
	for _, op := range intent.Operations() {
		if _, ok := r.handlers[op.Request]; !ok {
			missing = append(missing, op.Request)
		}
	}
	return missing
}

// Freeze rejects any later registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}
