package state

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/intent"
)

// ObserveIntent applies in to the state. It implements bus.Observer.
func (s *Store) ObserveIntent(_ context.Context, in *intent.Intent) {
	if err := s.Apply(in); err != nil {
		s.logger.Warn("failed to apply intent",
			"intent_id", in.ID,
			"intent_type", in.Type,
			"error", err)
	}
}

// Apply routes in to its reducer rule. Request intents and unknown types leave
// the state unchanged.
func (s *Store) Apply(in *intent.Intent) error {
	switch in.Type {
	case intent.CardCreateSuccess, intent.CardFetchSuccess, intent.CardUpdateSuccess,
		intent.CardAddColorSuccess, intent.CardRemoveColorSuccess, intent.CardMoveSuccess:
		var p domain.Payload
		if err := in.UnmarshalPayload(&p); err != nil {
			return err
		}
		s.mergeEntities(p)

	case intent.CardRemoveSuccess:
		var p domain.Payload
		if err := in.UnmarshalPayload(&p); err != nil {
			return err
		}
		s.removeCard(p.Result.Card)

	case intent.CardCreateFailure, intent.CardRemoveFailure, intent.CardFetchFailure,
		intent.CardUpdateFailure, intent.CardAddColorFailure, intent.CardRemoveColorFailure,
		intent.CardMoveFailure:
		var f intent.Failure
		if err := in.UnmarshalPayload(&f); err != nil {
			return err
		}
		s.recordFailure(in.Type, f.Message)

	case intent.BoardIncCardsLength:
		var p intent.CardsLength
		if err := in.UnmarshalPayload(&p); err != nil {
			return err
		}
		s.addCardsLength(p.BoardID, 1)

	case intent.BoardDecCardsLength:
		var p intent.CardsLength
		if err := in.UnmarshalPayload(&p); err != nil {
			return err
		}
		s.addCardsLength(p.BoardID, -p.Count)

	case intent.ListAddCardID:
		var p intent.ListCard
		if err := in.UnmarshalPayload(&p); err != nil {
			return err
		}
		s.addCardID(p.ListID, p.CardID)

	case intent.ListRemoveCardID:
		var p intent.ListCard
		if err := in.UnmarshalPayload(&p); err != nil {
			return err
		}
		s.removeCardID(p.ListID, p.CardID)

	case intent.ModalHide:
		s.mu.Lock()
		s.modalOpen = false
		s.mu.Unlock()

	case intent.NotificationCreate:
		var p intent.Notification
		if err := in.UnmarshalPayload(&p); err != nil {
			return err
		}
		s.addNotification(in.ID, p)
	}
	return nil
}

// mergeEntities overwrites cards and lists with the records in p.
func (s *Store) mergeEntities(p domain.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range p.Entities.Cards {
		if existing, ok := s.cards[id]; ok && c.ListID == "" {
			c.ListID = existing.ListID
		}
		s.cards[id] = cloneCard(c)
	}
	for id, l := range p.Entities.Lists {
		if existing, ok := s.lists[id]; ok {
			if l.BoardID == "" {
				l.BoardID = existing.BoardID
			}
			if l.Name == "" {
				l.Name = existing.Name
			}
		}
		l.Cards = cloneIDs(l.Cards)
		s.lists[id] = l
		for _, cardID := range l.Cards {
			if c, ok := s.cards[cardID]; ok {
				c.ListID = id
				s.cards[cardID] = c
			}
		}
	}
}

func (s *Store) removeCard(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cards, id)
}

func (s *Store) recordFailure(t intent.Type, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[t] = Failure{Type: t, Message: message, At: s.now()}
}

// addCardsLength adjusts a board counter by delta, never below zero.
func (s *Store) addCardsLength(boardID string, delta int) {
	if boardID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.boards[boardID]
	b.ID = boardID
	b.CardsLength += delta
	if b.CardsLength < 0 {
		b.CardsLength = 0
	}
	s.boards[boardID] = b
}

// addCardID appends cardID to a list unless it is already there.
func (s *Store) addCardID(listID, cardID string) {
	if listID == "" || cardID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[listID]
	if !ok {
		l = domain.List{ID: listID, Cards: []string{}}
	}
	for _, id := range l.Cards {
		if id == cardID {
			return
		}
	}
	l.Cards = append(cloneIDs(l.Cards), cardID)
	s.lists[listID] = l

	if c, ok := s.cards[cardID]; ok {
		c.ListID = listID
		s.cards[cardID] = c
	}
}

func (s *Store) removeCardID(listID, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[listID]
	if !ok {
		return
	}
	cards := make([]string, 0, len(l.Cards))
	for _, id := range l.Cards {
		if id != cardID {
			cards = append(cards, id)
		}
	}
	l.Cards = cards
	s.lists[listID] = l
}

func (s *Store) addNotification(id uuid.UUID, p intent.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Text:      p.Text,
		Kind:      p.Kind,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(p.TimeoutMS) * time.Millisecond),
	})
}
