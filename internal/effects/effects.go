package effects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/gateway"
	"github.com/phrazzld/cardflow/internal/intent"
	"github.com/phrazzld/cardflow/internal/platform/logger"
	"github.com/phrazzld/cardflow/internal/redact"
	"github.com/phrazzld/cardflow/internal/store"
)

// Remove-card tip shown once per flag lifetime after a card is created.
const (
	TipFlagKey = "display_card_remove_notification"
	TipFlagTTL = 24 * time.Hour
	TipText    = "You can remove card, by dragging it to the bottom of the screen"
	TipKind    = "tip"
	TipTimeout = 10 * time.Second
)

// ListsReader reads list records from the shared board state.
type ListsReader interface {
	List(ctx context.Context, id string) (domain.List, bool)
}

// Deps are the collaborators of the effect handlers.
type Deps struct {
	Gateway gateway.Gateway
	Lists   ListsReader
	Flags   store.FlagStore
	Bus     bus.Putter
	Logger  *slog.Logger

	// TipEnabled turns on the remove-card tip after card creation.
	TipEnabled bool
}

// Effects implements the seven card effect handlers.
type Effects struct {
	gw         gateway.Gateway
	lists      ListsReader
	flags      store.FlagStore
	bus        bus.Putter
	logger     *slog.Logger
	tipEnabled bool
}

// New validates deps and creates the handlers.
func New(deps Deps) (*Effects, error) {
	if deps.Gateway == nil {
		return nil, errors.New("gateway cannot be nil")
	}
	if deps.Lists == nil {
		return nil, errors.New("lists reader cannot be nil")
	}
	if deps.Flags == nil {
		return nil, errors.New("flag store cannot be nil")
	}
	if deps.Bus == nil {
		return nil, errors.New("bus cannot be nil")
	}
	if deps.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Effects{
		gw:         deps.Gateway,
		lists:      deps.Lists,
		flags:      deps.Flags,
		bus:        deps.Bus,
		logger:     deps.Logger.With("component", "effects"),
		tipEnabled: deps.TipEnabled,
	}, nil
}

// Handlers maps every card request type to its handler.
func (e *Effects) Handlers() map[intent.Type]bus.Handler {
	return map[intent.Type]bus.Handler{
		intent.CardCreateRequest:      e.wrap(e.CreateCard),
		intent.CardRemoveRequest:      e.wrap(e.RemoveCard),
		intent.CardFetchRequest:       e.wrap(e.FetchCard),
		intent.CardUpdateRequest:      e.wrap(e.UpdateCard),
		intent.CardAddColorRequest:    e.wrap(e.AddColor),
		intent.CardRemoveColorRequest: e.wrap(e.RemoveColor),
		intent.CardMoveRequest:        e.wrap(e.MoveCard),
	}
}

// wrap scopes the context logger to the intent and logs the invocation.
func (e *Effects) wrap(fn bus.HandlerFunc) bus.Handler {
	return bus.HandlerFunc(func(ctx context.Context, in *intent.Intent) error {
		log := e.logger.With("intent_id", in.ID, "intent_type", in.Type)
		ctx = logger.WithLogger(ctx, log)

		start := time.Now()
		log.Debug("effect started")
		err := fn(ctx, in)
		if err != nil {
			log.Error("effect aborted", "error", err, "duration_ms", time.Since(start).Milliseconds())
			return err
		}
		log.Debug("effect finished", "duration_ms", time.Since(start).Milliseconds())
		return nil
	})
}

// put emits intents in order, stopping at the first error.
func (e *Effects) put(ctx context.Context, intents ...*intent.Intent) error {
	for _, in := range intents {
		if err := e.bus.Put(ctx, in); err != nil {
			return fmt.Errorf("failed to put %s: %w", in.Type, err)
		}
	}
	return nil
}

// fail emits the failure intent of op and logs the cause.
func (e *Effects) fail(ctx context.Context, op intent.Operation, err error) error {
	logger.FromContext(ctx).Warn("card operation failed",
		"failure_type", op.Failure,
		"error", redact.Error(err))
	return e.put(ctx, intent.Fail(op, err))
}

// decode unmarshals the request payload. Decoding never validates fields.
func decode(in *intent.Intent, v interface{}) error {
	if err := in.UnmarshalPayload(v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", in.Type, err)
	}
	return nil
}
