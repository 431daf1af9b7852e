package dispatch

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/intent"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("sequencer already started")

// Subscriber is the part of the bus the Sequencer needs.
type Subscriber interface {
	Subscribe(t intent.Type, handler bus.Handler)
}

// Sequencer starts every registered effect handler on a bus.
type Sequencer struct {
	registry *Registry
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewSequencer creates a Sequencer for registry.
func NewSequencer(registry *Registry, logger *slog.Logger) *Sequencer {
	return &Sequencer{
		registry: registry,
		logger:   logger.With("component", "sequencer"),
	}
}

// Start freezes the registry and subscribes each handler to its type. Every
// handler then runs independently for each matching intent.
func (s *Sequencer) Start(sub Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.registry.Freeze()

	types := s.registry.Types()
	for _, t := range types {
		h, _ := s.registry.Handler(t)
		sub.Subscribe(t, h)
	}
	s.started = true

	if missing := s.registry.Missing(); len(missing) > 0 {
		s.logger.Warn("request types without handler", "intent_types", missing)
	}
	s.logger.Info("effect handlers started", "handler_count", len(types))
	return nil
}
