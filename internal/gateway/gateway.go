package gateway

import (
	"context"
	"encoding/json"

	"github.com/phrazzld/cardflow/internal/domain"
)

// Gateway performs card operations against the remote board service. Every
// method returns the normalized response of the service or an error whose
// Error() text is fit to show to a user.
type Gateway interface {
	CreateCard(ctx context.Context, listID, text string) (*domain.Payload, error)
	RemoveCard(ctx context.Context, cardID string) (*domain.Payload, error)
	FetchCard(ctx context.Context, cardID string) (*domain.Payload, error)
	UpdateCard(ctx context.Context, id string, props map[string]json.RawMessage) (*domain.Payload, error)
	AddColorToCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error)
	RemoveColorFromCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error)
	MoveCard(ctx context.Context, source, target domain.ListSummary) (*domain.Payload, error)
}

// BoardReader loads the lists of a board, used to seed the local board state.
type BoardReader interface {
	FetchLists(ctx context.Context, boardID string) ([]domain.List, error)
}
