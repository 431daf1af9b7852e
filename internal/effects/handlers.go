package effects

import (
	"context"
	"fmt"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/intent"
	"github.com/phrazzld/cardflow/internal/platform/logger"
	"github.com/phrazzld/cardflow/internal/redact"
)

// CreateCard handles CARD_CREATE_REQUEST.
func (e *Effects) CreateCard(ctx context.Context, in *intent.Intent) error {
	var req intent.CreateCardRequest
	if err := decode(in, &req); err != nil {
		return e.fail(ctx, intent.CreateCard, err)
	}

	p, err := e.gw.CreateCard(ctx, req.ListID, req.Text)
	if err != nil {
		return e.fail(ctx, intent.CreateCard, err)
	}
	if p == nil {
		p = &domain.Payload{}
	}

	if err := e.put(ctx,
		intent.Success(intent.CreateCard, p),
		intent.IncCardsLength(req.BoardID),
		intent.AddCardID(req.ListID, p.Result.Card),
		intent.HideModal(),
	); err != nil {
		return err
	}

	return e.showRemoveTip(ctx)
}

// showRemoveTip emits the remove-card tip if this invocation claims its flag.
// Flag store errors skip the tip.
func (e *Effects) showRemoveTip(ctx context.Context) error {
	if !e.tipEnabled {
		return nil
	}

	claimed, err := e.flags.Claim(ctx, TipFlagKey, TipFlagTTL)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to claim tip flag, skipping tip", "error", redact.Error(err))
		return nil
	}
	if !claimed {
		return nil
	}

	return e.put(ctx, intent.CreateNotification(TipText, TipKind, TipTimeout))
}

// RemoveCard handles CARD_REMOVE_REQUEST.
func (e *Effects) RemoveCard(ctx context.Context, in *intent.Intent) error {
	var req intent.RemoveCardRequest
	if err := decode(in, &req); err != nil {
		return e.fail(ctx, intent.RemoveCard, err)
	}

	p, err := e.gw.RemoveCard(ctx, req.CardID)
	if err != nil {
		return e.fail(ctx, intent.RemoveCard, err)
	}

	return e.put(ctx,
		intent.Success(intent.RemoveCard, p),
		intent.DecCardsLength(req.BoardID, 1),
		intent.RemoveCardID(req.ListID, req.CardID),
	)
}

// FetchCard handles CARD_FETCH_REQUEST. Both outcomes echo the request.
func (e *Effects) FetchCard(ctx context.Context, in *intent.Intent) error {
	var req intent.FetchCardRequest
	if err := decode(in, &req); err != nil {
		return e.failFetch(ctx, req, err)
	}

	p, err := e.gw.FetchCard(ctx, req.CardID)
	if err != nil {
		return e.failFetch(ctx, req, err)
	}

	success := intent.FetchCardSuccess{Request: req}
	if p != nil {
		success.Payload = *p
	}
	return e.put(ctx, intent.MustNew(intent.CardFetchSuccess, success))
}

func (e *Effects) failFetch(ctx context.Context, req intent.FetchCardRequest, err error) error {
	logger.FromContext(ctx).Warn("card operation failed",
		"failure_type", intent.CardFetchFailure,
		"error", redact.Error(err))
	return e.put(ctx, intent.MustNew(intent.CardFetchFailure, intent.FetchCardFailure{
		Message: err.Error(),
		Request: req,
	}))
}

// UpdateCard handles CARD_UPDATE_REQUEST.
func (e *Effects) UpdateCard(ctx context.Context, in *intent.Intent) error {
	var req intent.UpdateCardRequest
	if err := decode(in, &req); err != nil {
		return e.fail(ctx, intent.UpdateCard, err)
	}

	p, err := e.gw.UpdateCard(ctx, req.ID, req.Props)
	if err != nil {
		return e.fail(ctx, intent.UpdateCard, err)
	}
	return e.put(ctx, intent.Success(intent.UpdateCard, p))
}

// AddColor handles CARD_ADD_COLOR_REQUEST.
func (e *Effects) AddColor(ctx context.Context, in *intent.Intent) error {
	var req intent.ColorRequest
	if err := decode(in, &req); err != nil {
		return e.fail(ctx, intent.AddColor, err)
	}

	p, err := e.gw.AddColorToCard(ctx, req.CardID, req.ColorID)
	if err != nil {
		return e.fail(ctx, intent.AddColor, err)
	}
	return e.put(ctx, intent.Success(intent.AddColor, p))
}

// RemoveColor handles CARD_REMOVE_COLOR_REQUEST.
func (e *Effects) RemoveColor(ctx context.Context, in *intent.Intent) error {
	var req intent.ColorRequest
	if err := decode(in, &req); err != nil {
		return e.fail(ctx, intent.RemoveColor, err)
	}

	p, err := e.gw.RemoveColorFromCard(ctx, req.CardID, req.ColorID)
	if err != nil {
		return e.fail(ctx, intent.RemoveColor, err)
	}
	return e.put(ctx, intent.Success(intent.RemoveColor, p))
}

// MoveCard handles CARD_MOVE_REQUEST. The card order of both lists is read
// from the board state before the call, so the request only names the lists.
func (e *Effects) MoveCard(ctx context.Context, in *intent.Intent) error {
	var req intent.MoveCardRequest
	if err := decode(in, &req); err != nil {
		return e.fail(ctx, intent.MoveCard, err)
	}

	source, err := e.summary(ctx, req.SourceListID)
	if err != nil {
		return e.fail(ctx, intent.MoveCard, err)
	}
	target, err := e.summary(ctx, req.TargetListID)
	if err != nil {
		return e.fail(ctx, intent.MoveCard, err)
	}

	p, err := e.gw.MoveCard(ctx, source, target)
	if err != nil {
		return e.fail(ctx, intent.MoveCard, err)
	}
	return e.put(ctx, intent.Success(intent.MoveCard, p))
}

func (e *Effects) summary(ctx context.Context, listID string) (domain.ListSummary, error) {
	l, ok := e.lists.List(ctx, listID)
	if !ok {
		return domain.ListSummary{}, fmt.Errorf("%w: %s", domain.ErrListNotFound, listID)
	}
	return l.Summary(), nil
}
