package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/cardflow/internal/intent"
)

// Recorder captures intents in the order they are put or observed. It
// implements bus.Putter and bus.Observer.
type Recorder struct {
	// PutErr, when set, is returned by Put after recording.
	PutErr error

	mu      sync.Mutex
	intents []*intent.Intent
}

// Put records in.
func (r *Recorder) Put(_ context.Context, in *intent.Intent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, in)
	return r.PutErr
}

// ObserveIntent records in.
func (r *Recorder) ObserveIntent(_ context.Context, in *intent.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, in)
}

// Intents returns a copy of everything recorded so far.
func (r *Recorder) Intents() []*intent.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*intent.Intent(nil), r.intents...)
}

// Types returns the types of the recorded intents in order.
func (r *Recorder) Types() []intent.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]intent.Type, len(r.intents))
	for i, in := range r.intents {
		types[i] = in.Type
	}
	return types
}

// OfType returns the recorded intents of type t.
func (r *Recorder) OfType(t intent.Type) []*intent.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*intent.Intent
	for _, in := range r.intents {
		if in.Type == t {
			out = append(out, in)
		}
	}
	return out
}
