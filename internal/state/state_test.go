package state

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/intent"
)

func newTestStore(now func() time.Time) *Store {
	return NewWithClock(slog.New(slog.NewTextHandler(io.Discard, nil)), now)
}

func seeded() *Store {
	s := newTestStore(time.Now)
	s.Seed("B1", []domain.List{
		{ID: "L1", Name: "Todo", Cards: []string{"a", "b"}},
		{ID: "L2", Name: "Done", Cards: []string{}},
	})
	return s
}

func TestSeed(t *testing.T) {
	s := seeded()

	b, ok := s.Board("B1")
	require.True(t, ok)
	assert.Equal(t, []string{"L1", "L2"}, b.Lists)
	assert.Equal(t, 2, b.CardsLength)

	l, ok := s.List(context.Background(), "L1")
	require.True(t, ok)
	assert.Equal(t, "B1", l.BoardID)
	assert.Equal(t, []string{"a", "b"}, l.Cards)

	_, ok = s.List(context.Background(), "nope")
	assert.False(t, ok)
}

func TestListReturnsCopy(t *testing.T) {
	s := seeded()

	l, _ := s.List(context.Background(), "L1")
	l.Cards[0] = "mutated"

	again, _ := s.List(context.Background(), "L1")
	assert.Equal(t, "a", again.Cards[0])
}

func TestCreateCardFlow(t *testing.T) {
	s := seeded()
	s.OpenModal()

	for _, in := range []*intent.Intent{
		intent.Success(intent.CreateCard, domain.NewCardPayload(domain.Card{ID: "c", ListID: "L1", Text: "new"})),
		intent.IncCardsLength("B1"),
		intent.AddCardID("L1", "c"),
		intent.HideModal(),
	} {
		require.NoError(t, s.Apply(in))
	}

	card, ok := s.Card("c")
	require.True(t, ok)
	assert.Equal(t, "new", card.Text)

	l, _ := s.List(context.Background(), "L1")
	assert.Equal(t, []string{"a", "b", "c"}, l.Cards)

	b, _ := s.Board("B1")
	assert.Equal(t, 3, b.CardsLength)
	assert.False(t, s.Snapshot().ModalOpen)
}

func TestAddCardIDIsSetLike(t *testing.T) {
	s := seeded()
	require.NoError(t, s.Apply(intent.AddCardID("L1", "a")))

	l, _ := s.List(context.Background(), "L1")
	assert.Equal(t, []string{"a", "b"}, l.Cards)

	require.NoError(t, s.Apply(intent.AddCardID("L9", "z")))
	l, ok := s.List(context.Background(), "L9")
	require.True(t, ok, "unknown list is created")
	assert.Equal(t, []string{"z"}, l.Cards)
}

func TestRemoveCardFlow(t *testing.T) {
	s := seeded()
	require.NoError(t, s.Apply(intent.Success(intent.CreateCard, domain.NewCardPayload(domain.Card{ID: "a"}))))

	for _, in := range []*intent.Intent{
		intent.Success(intent.RemoveCard, domain.NewCardPayload(domain.Card{ID: "a"})),
		intent.DecCardsLength("B1", 1),
		intent.RemoveCardID("L1", "a"),
	} {
		require.NoError(t, s.Apply(in))
	}

	_, ok := s.Card("a")
	assert.False(t, ok)

	l, _ := s.List(context.Background(), "L1")
	assert.Equal(t, []string{"b"}, l.Cards)

	b, _ := s.Board("B1")
	assert.Equal(t, 1, b.CardsLength)
}

func TestCardsLengthNeverNegative(t *testing.T) {
	s := newTestStore(time.Now)
	require.NoError(t, s.Apply(intent.DecCardsLength("B1", 3)))

	b, ok := s.Board("B1")
	require.True(t, ok)
	assert.Equal(t, 0, b.CardsLength)
}

func TestMoveSuccessReplacesLists(t *testing.T) {
	s := seeded()
	require.NoError(t, s.Apply(intent.Success(intent.CreateCard, domain.NewCardPayload(domain.Card{ID: "a", ListID: "L1"}))))

	moved := domain.NewListsPayload(
		domain.List{ID: "L1", Cards: []string{"b"}},
		domain.List{ID: "L2", Cards: []string{"a"}},
	)
	require.NoError(t, s.Apply(intent.Success(intent.MoveCard, moved)))

	l1, _ := s.List(context.Background(), "L1")
	l2, _ := s.List(context.Background(), "L2")
	assert.Equal(t, []string{"b"}, l1.Cards)
	assert.Equal(t, []string{"a"}, l2.Cards)
	assert.Equal(t, "Done", l2.Name, "existing list metadata is kept")
	assert.Equal(t, "B1", l2.BoardID)

	card, _ := s.Card("a")
	assert.Equal(t, "L2", card.ListID)
}

func TestNotificationsExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	s := newTestStore(clock)

	require.NoError(t, s.Apply(intent.CreateNotification("tip text", "tip", 10*time.Second)))

	notes := s.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "tip text", notes[0].Text)
	assert.Equal(t, "tip", notes[0].Kind)

	mu.Lock()
	now = now.Add(10 * time.Second)
	mu.Unlock()
	assert.Empty(t, s.Notifications())
}

func TestFailuresRecorded(t *testing.T) {
	s := newTestStore(time.Now)
	require.NoError(t, s.Apply(intent.MustNew(intent.CardFetchFailure, intent.FetchCardFailure{
		Message: "Not found",
		Request: intent.FetchCardRequest{CardID: "x"},
	})))
	require.NoError(t, s.Apply(intent.Fail(intent.MoveCard, assert.AnError)))

	snap := s.Snapshot()
	require.Len(t, snap.Failures, 2)
	assert.Equal(t, intent.CardFetchFailure, snap.Failures[0].Type)
	assert.Equal(t, "Not found", snap.Failures[0].Message)
	assert.Equal(t, intent.CardMoveFailure, snap.Failures[1].Type)
}

func TestRequestsAndMalformedPayloads(t *testing.T) {
	s := seeded()
	before := s.Snapshot()

	require.NoError(t, s.Apply(intent.MustNew(intent.CardCreateRequest, intent.CreateCardRequest{ListID: "L1"})))
	assert.Equal(t, before, s.Snapshot(), "requests do not change state")

	bad := &intent.Intent{Type: intent.ListAddCardID, Payload: []byte(`[]`)}
	assert.Error(t, s.Apply(bad))
	s.ObserveIntent(context.Background(), bad)
}

func TestConcurrentApply(t *testing.T) {
	s := seeded()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ObserveIntent(context.Background(), intent.IncCardsLength("B1"))
			_, _ = s.List(context.Background(), "L1")
		}()
	}
	wg.Wait()

	b, _ := s.Board("B1")
	assert.Equal(t, 52, b.CardsLength)
}
