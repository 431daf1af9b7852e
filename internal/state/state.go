package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/intent"
)

// Notification is a notification held in the state until it times out.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Kind      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Failure is the last failure recorded for an operation.
type Failure struct {
	Type    intent.Type `json:"type"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// Snapshot is a copy of the whole state.
type Snapshot struct {
	Boards        map[string]domain.Board `json:"boards"`
	Lists         map[string]domain.List  `json:"lists"`
	Cards         map[string]domain.Card  `json:"cards"`
	Notifications []Notification          `json:"notifications"`
	ModalOpen     bool                    `json:"modalOpen"`
	Failures      []Failure               `json:"failures"`
}

// Store is the board state. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	boards        map[string]domain.Board
	lists         map[string]domain.List
	cards         map[string]domain.Card
	notifications []Notification
	modalOpen     bool
	failures      map[intent.Type]Failure

	now    func() time.Time
	logger *slog.Logger
}

// New creates an empty Store.
func New(logger *slog.Logger) *Store {
	return NewWithClock(logger, time.Now)
}

// NewWithClock creates an empty Store that reads time from now.
func NewWithClock(logger *slog.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		boards:   make(map[string]domain.Board),
		lists:    make(map[string]domain.List),
		cards:    make(map[string]domain.Card),
		failures: make(map[intent.Type]Failure),
		now:      now,
		logger:   logger.With("component", "state"),
	}
}

// Seed loads the lists of a board, replacing any lists with the same IDs. The
// board card counter is set to the number of cards across the lists.
func (s *Store) Seed(boardID string, lists []domain.List) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.boards[boardID]
	board.ID = boardID
	board.Lists = make([]string, 0, len(lists))
	board.CardsLength = 0
	for _, l := range lists {
		l.BoardID = boardID
		l.Cards = cloneIDs(l.Cards)
		s.lists[l.ID] = l
		board.Lists = append(board.Lists, l.ID)
		board.CardsLength += len(l.Cards)
	}
	s.boards[boardID] = board
}

// OpenModal marks a modal as open, as the UI does before a create request.
func (s *Store) OpenModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalOpen = true
}

// List returns a copy of the list with id.
func (s *Store) List(_ context.Context, id string) (domain.List, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	if !ok {
		return domain.List{}, false
	}
	l.Cards = cloneIDs(l.Cards)
	return l, true
}

// Board returns a copy of the board with id.
func (s *Store) Board(id string) (domain.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[id]
	if !ok {
		return domain.Board{}, false
	}
	b.Lists = cloneIDs(b.Lists)
	return b, true
}

// Card returns a copy of the card with id.
func (s *Store) Card(id string) (domain.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards[id]
	if !ok {
		return domain.Card{}, false
	}
	return cloneCard(c), true
}

// Notifications returns the notifications that have not timed out yet.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneNotifications()
	return append([]Notification{}, s.notifications...)
}

// Snapshot returns a deep copy of the state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneNotifications()
	snap := Snapshot{
		Boards:        make(map[string]domain.Board, len(s.boards)),
		Lists:         make(map[string]domain.List, len(s.lists)),
		Cards:         make(map[string]domain.Card, len(s.cards)),
		Notifications: append([]Notification{}, s.notifications...),
		ModalOpen:     s.modalOpen,
		Failures:      make([]Failure, 0, len(s.failures)),
	}
	for id, b := range s.boards {
		b.Lists = cloneIDs(b.Lists)
		snap.Boards[id] = b
	}
	for id, l := range s.lists {
		l.Cards = cloneIDs(l.Cards)
		snap.Lists[id] = l
	}
	for id, c := range s.cards {
		snap.Cards[id] = cloneCard(c)
	}
	for _, f := range s.failures {
		snap.Failures = append(snap.Failures, f)
	}
	sort.Slice(snap.Failures, func(i, j int) bool { return snap.Failures[i].Type < snap.Failures[j].Type })
	return snap
}

func (s *Store) pruneNotifications() {
	now := s.now()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func cloneCard(c domain.Card) domain.Card {
	if c.Colors != nil {
		c.Colors = cloneIDs(c.Colors)
	}
	if c.Props != nil {
		props := make(map[string]json.RawMessage, len(c.Props))
		for k, v := range c.Props {
			props[k] = v
		}
		c.Props = props
	}
	return c
}
