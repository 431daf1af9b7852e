package trello

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/adlio/trello"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/gateway"
	"github.com/phrazzld/cardflow/internal/redact"
)

// positionStep spaces card positions so Trello keeps room for later inserts.
const positionStep = 1024

// Config holds the Trello credentials and the board the gateway works on.
type Config struct {
	Key     string
	Token   string
	BoardID string
	// BaseURL overrides the Trello API endpoint. Empty means the public API.
	BaseURL string
}

// Client adapts a Trello board to the card gateway.
type Client struct {
	api     *trello.Client
	boardID string
	logger  *slog.Logger
}

var (
	_ gateway.Gateway     = (*Client)(nil)
	_ gateway.BoardReader = (*Client)(nil)
)

// New creates a Trello gateway for the configured board.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Key == "" || cfg.Token == "" {
		return nil, errors.New("trello key and token are required")
	}

	api := trello.NewClient(cfg.Key, cfg.Token)
	if cfg.BaseURL != "" {
		api.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:     api,
		boardID: cfg.BoardID,
		logger:  logger.With("component", "trello_gateway"),
	}, nil
}

// CreateCard adds a card named text at the bottom of the list.
func (c *Client) CreateCard(ctx context.Context, listID, text string) (*domain.Payload, error) {
	card := trello.Card{Name: text, IDList: listID}
	if err := c.api.WithContext(ctx).CreateCard(&card, trello.Arguments{"pos": "bottom"}); err != nil {
		return nil, c.fail("createCard", err)
	}
	return domain.NewCardPayload(toCard(&card)), nil
}

// RemoveCard deletes the card and returns it as it was before removal.
func (c *Client) RemoveCard(ctx context.Context, cardID string) (*domain.Payload, error) {
	api := c.api.WithContext(ctx)
	card, err := api.GetCard(cardID, trello.Defaults())
	if err != nil {
		return nil, c.fail("removeCard", err)
	}

	var ignored map[string]interface{}
	if err := api.Delete("cards/"+cardID, trello.Defaults(), &ignored); err != nil {
		return nil, c.fail("removeCard", err)
	}
	return domain.NewCardPayload(toCard(card)), nil
}

// FetchCard loads a single card.
func (c *Client) FetchCard(ctx context.Context, cardID string) (*domain.Payload, error) {
	card, err := c.api.WithContext(ctx).GetCard(cardID, trello.Defaults())
	if err != nil {
		return nil, c.fail("fetchCard", err)
	}
	return domain.NewCardPayload(toCard(card)), nil
}

// UpdateCard writes props onto the card. Known card fields are renamed to their
// Trello names; anything else is sent through unchanged.
func (c *Client) UpdateCard(ctx context.Context, id string, props map[string]json.RawMessage) (*domain.Payload, error) {
	args := trello.Arguments{}
	for k, v := range props {
		args[fieldName(k)] = argValue(v)
	}

	var card trello.Card
	if err := c.api.WithContext(ctx).Put("cards/"+id, args, &card); err != nil {
		return nil, c.fail("updateCard", err)
	}
	return domain.NewCardPayload(toCard(&card)), nil
}

// AddColorToCard attaches the label colorID to the card.
func (c *Client) AddColorToCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error) {
	api := c.api.WithContext(ctx)

	var labelIDs []string
	if err := api.Post("cards/"+cardID+"/idLabels", trello.Arguments{"value": colorID}, &labelIDs); err != nil {
		return nil, c.fail("addColorToCard", err)
	}
	return c.reload(api, "addColorToCard", cardID)
}

// RemoveColorFromCard detaches the label colorID from the card.
func (c *Client) RemoveColorFromCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error) {
	api := c.api.WithContext(ctx)

	var ignored interface{}
	if err := api.Delete("cards/"+cardID+"/idLabels/"+colorID, trello.Defaults(), &ignored); err != nil {
		return nil, c.fail("removeColorFromCard", err)
	}
	return c.reload(api, "removeColorFromCard", cardID)
}

// MoveCard stores the card order of both lists by rewriting list membership and
// positions of every card they hold.
func (c *Client) MoveCard(ctx context.Context, source, target domain.ListSummary) (*domain.Payload, error) {
	api := c.api.WithContext(ctx)

	summaries := []domain.ListSummary{source}
	if target.ID != source.ID {
		summaries = append(summaries, target)
	}

	lists := make([]domain.List, 0, len(summaries))
	for _, s := range summaries {
		for i, cardID := range s.Cards {
			args := trello.Arguments{
				"idList": s.ID,
				"pos":    strconv.Itoa((i + 1) * positionStep),
			}
			var card trello.Card
			if err := api.Put("cards/"+cardID, args, &card); err != nil {
				return nil, c.fail("moveCard", err)
			}
		}
		lists = append(lists, domain.List{ID: s.ID, BoardID: c.boardID, Cards: append([]string{}, s.Cards...)})
	}

	c.logger.Debug("moved cards",
		"source_list", source.ID,
		"target_list", target.ID,
		"cards", len(source.Cards)+len(target.Cards))

	return domain.NewListsPayload(lists...), nil
}

// FetchLists loads the open lists of a board with their cards in position order.
func (c *Client) FetchLists(ctx context.Context, boardID string) ([]domain.List, error) {
	if boardID == "" {
		boardID = c.boardID
	}
	api := c.api.WithContext(ctx)

	board, err := api.GetBoard(boardID, trello.Defaults())
	if err != nil {
		return nil, c.fail("fetchLists", err)
	}
	tLists, err := board.GetLists(trello.Defaults())
	if err != nil {
		return nil, c.fail("fetchLists", err)
	}
	tCards, err := board.GetCards(trello.Defaults())
	if err != nil {
		return nil, c.fail("fetchLists", err)
	}

	sort.SliceStable(tCards, func(i, j int) bool { return tCards[i].Pos < tCards[j].Pos })
	byList := make(map[string][]string, len(tLists))
	for _, card := range tCards {
		byList[card.IDList] = append(byList[card.IDList], card.ID)
	}

	lists := make([]domain.List, 0, len(tLists))
	for _, l := range tLists {
		cards := byList[l.ID]
		if cards == nil {
			cards = []string{}
		}
		lists = append(lists, domain.List{ID: l.ID, BoardID: boardID, Name: l.Name, Cards: cards})
	}
	return lists, nil
}

func (c *Client) reload(api *trello.Client, op, cardID string) (*domain.Payload, error) {
	card, err := api.GetCard(cardID, trello.Defaults())
	if err != nil {
		return nil, c.fail(op, err)
	}
	return domain.NewCardPayload(toCard(card)), nil
}

// fail converts a Trello client error into a gateway error.
func (c *Client) fail(op string, err error) error {
	c.logger.Warn("trello request failed", "op", op, "error", redact.Error(err))

	switch {
	case trello.IsNotFound(err):
		return gateway.NewError(op, http.StatusNotFound, "Card not found", fmt.Errorf("%w: %v", gateway.ErrNotFound, err))
	case trello.IsPermissionDenied(err):
		return gateway.NewError(op, http.StatusUnauthorized, "Trello denied access to the board", fmt.Errorf("%w: %v", gateway.ErrRejected, err))
	case trello.IsRateLimit(err):
		return gateway.NewError(op, http.StatusTooManyRequests, "Trello rate limit reached, try again later", fmt.Errorf("%w: %v", gateway.ErrUnavailable, err))
	default:
		return gateway.NewError(op, 0, "Trello request failed", fmt.Errorf("%w: %v", gateway.ErrUnavailable, err))
	}
}

func toCard(c *trello.Card) domain.Card {
	card := domain.Card{
		ID:     c.ID,
		ListID: c.IDList,
		Text:   c.Name,
	}
	if len(c.IDLabels) > 0 {
		card.Colors = append([]string(nil), c.IDLabels...)
	}
	if c.Desc != "" {
		desc, _ := json.Marshal(c.Desc)
		card.Props = map[string]json.RawMessage{"description": desc}
	}
	return card
}

var fieldNames = map[string]string{
	"text":        "name",
	"description": "desc",
	"listId":      "idList",
}

func fieldName(prop string) string {
	if name, ok := fieldNames[prop]; ok {
		return name
	}
	return prop
}

// argValue renders a JSON prop as a Trello query argument: strings lose their
// quotes, other values keep their JSON text.
func argValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
