package bus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/cardflow/internal/intent"
	"github.com/phrazzld/cardflow/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *Bus {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(task.NewRunner(logger), logger)
}

// recorder is an Observer that keeps every intent it sees.
type recorder struct {
	mu  sync.Mutex
	got []*intent.Intent
}

func (r *recorder) ObserveIntent(ctx context.Context, in *intent.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, in)
}

func (r *recorder) types() []intent.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]intent.Type, 0, len(r.got))
	for _, in := range r.got {
		out = append(out, in.Type)
	}
	return out
}

func TestBus_PutWithNoHandlers(t *testing.T) {
	b := newTestBus()
	rec := &recorder{}
	b.SubscribeAll(rec)

	err := b.Put(context.Background(), intent.HideModal())

	require.NoError(t, err)
	assert.Equal(t, []intent.Type{intent.ModalHide}, rec.types())
	require.NoError(t, b.Close(context.Background()))
}

func TestBus_DispatchesByType(t *testing.T) {
	b := newTestBus()

	var mu sync.Mutex
	calls := make(map[string]int)
	count := func(name string) HandlerFunc {
		return func(ctx context.Context, in *intent.Intent) error {
			mu.Lock()
			defer mu.Unlock()
			calls[name]++
			return nil
		}
	}

	b.Subscribe(intent.CardCreateRequest, count("create-a"))
	b.Subscribe(intent.CardCreateRequest, count("create-b"))
	b.Subscribe(intent.CardRemoveRequest, count("remove"))

	in := intent.MustNew(intent.CardCreateRequest, intent.CreateCardRequest{BoardID: "b1"})
	require.NoError(t, b.Put(context.Background(), in))
	require.NoError(t, b.Close(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]int{"create-a": 1, "create-b": 1}, calls)
}

func TestBus_HandlersRunConcurrently(t *testing.T) {
	b := newTestBus()
	release := make(chan struct{})
	second := make(chan struct{})

	first := true
	var mu sync.Mutex
	b.Subscribe(intent.CardFetchRequest, HandlerFunc(func(ctx context.Context, in *intent.Intent) error {
		mu.Lock()
		isFirst := first
		first = false
		mu.Unlock()
		if isFirst {
			<-release
			return nil
		}
		close(second)
		return nil
	}))

	require.NoError(t, b.Put(context.Background(), intent.MustNew(intent.CardFetchRequest, intent.FetchCardRequest{CardID: "c1"})))
	require.NoError(t, b.Put(context.Background(), intent.MustNew(intent.CardFetchRequest, intent.FetchCardRequest{CardID: "c2"})))

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("second occurrence was blocked by the first")
	}

	close(release)
	require.NoError(t, b.Close(context.Background()))
}

func TestBus_FailingHandlerDoesNotAffectOthers(t *testing.T) {
	b := newTestBus()
	ok := make(chan struct{})

	b.Subscribe(intent.CardUpdateRequest, HandlerFunc(func(ctx context.Context, in *intent.Intent) error {
		return errors.New("boom")
	}))
	b.Subscribe(intent.CardUpdateRequest, HandlerFunc(func(ctx context.Context, in *intent.Intent) error {
		panic("kaboom")
	}))
	b.Subscribe(intent.CardUpdateRequest, HandlerFunc(func(ctx context.Context, in *intent.Intent) error {
		close(ok)
		return nil
	}))

	require.NoError(t, b.Put(context.Background(), intent.MustNew(intent.CardUpdateRequest, intent.UpdateCardRequest{ID: "c1"})))

	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("healthy handler did not run")
	}

	// The bus keeps working after a handler panicked.
	assert.NoError(t, b.Put(context.Background(), intent.HideModal()))
	require.NoError(t, b.Close(context.Background()))
}

func TestBus_FollowUpsDuringClose(t *testing.T) {
	b := newTestBus()
	rec := &recorder{}
	b.SubscribeAll(rec)
	release := make(chan struct{})

	b.Subscribe(intent.CardRemoveRequest, HandlerFunc(func(ctx context.Context, in *intent.Intent) error {
		<-release
		return b.Put(ctx, intent.DecCardsLength("b1", 1))
	}))

	require.NoError(t, b.Put(context.Background(), intent.MustNew(intent.CardRemoveRequest, intent.RemoveCardRequest{CardID: "c1"})))

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	require.NoError(t, b.Close(context.Background()))

	assert.Equal(t, []intent.Type{intent.CardRemoveRequest, intent.BoardDecCardsLength}, rec.types())
}

func TestBus_PutAfterClose(t *testing.T) {
	b := newTestBus()
	require.NoError(t, b.Close(context.Background()))

	err := b.Put(context.Background(), intent.HideModal())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBus_ObserversSeeIntentBeforeHandlers(t *testing.T) {
	b := newTestBus()
	rec := &recorder{}
	b.SubscribeAll(rec)
	seen := make(chan int, 1)

	b.Subscribe(intent.CardMoveRequest, HandlerFunc(func(ctx context.Context, in *intent.Intent) error {
		seen <- len(rec.types())
		return nil
	}))

	require.NoError(t, b.Put(context.Background(), intent.MustNew(intent.CardMoveRequest, intent.MoveCardRequest{})))
	require.NoError(t, b.Close(context.Background()))

	assert.Equal(t, 1, <-seen)
}
