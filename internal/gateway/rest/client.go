package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/gateway"
	"github.com/phrazzld/cardflow/internal/redact"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Config holds the settings of the REST client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Token, when set, is sent as a bearer token on every request.
	Token string
}

// Client talks to the board REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	logger  *slog.Logger
}

var (
	_ gateway.Gateway     = (*Client)(nil)
	_ gateway.BoardReader = (*Client)(nil)
)

// New creates a REST client for the service at cfg.BaseURL.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		token:   cfg.Token,
		logger:  logger.With("component", "rest_gateway"),
	}, nil
}

// CreateCard creates a card with the given text at the end of a list.
func (c *Client) CreateCard(ctx context.Context, listID, text string) (*domain.Payload, error) {
	body := map[string]string{"text": text}
	return c.payload(ctx, "createCard", http.MethodPost, "/api/lists/"+url.PathEscape(listID)+"/cards", body)
}

// RemoveCard deletes a card.
func (c *Client) RemoveCard(ctx context.Context, cardID string) (*domain.Payload, error) {
	return c.payload(ctx, "removeCard", http.MethodDelete, "/api/cards/"+url.PathEscape(cardID), nil)
}

// FetchCard loads a card with its details.
func (c *Client) FetchCard(ctx context.Context, cardID string) (*domain.Payload, error) {
	return c.payload(ctx, "fetchCard", http.MethodGet, "/api/cards/"+url.PathEscape(cardID), nil)
}

// UpdateCard applies props to a card.
func (c *Client) UpdateCard(ctx context.Context, id string, props map[string]json.RawMessage) (*domain.Payload, error) {
	if props == nil {
		props = map[string]json.RawMessage{}
	}
	return c.payload(ctx, "updateCard", http.MethodPut, "/api/cards/"+url.PathEscape(id), props)
}

// AddColorToCard attaches a color label to a card.
func (c *Client) AddColorToCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error) {
	body := map[string]string{"colorId": colorID}
	return c.payload(ctx, "addColorToCard", http.MethodPost, "/api/cards/"+url.PathEscape(cardID)+"/colors", body)
}

// RemoveColorFromCard detaches a color label from a card.
func (c *Client) RemoveColorFromCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error) {
	path := "/api/cards/" + url.PathEscape(cardID) + "/colors/" + url.PathEscape(colorID)
	return c.payload(ctx, "removeColorFromCard", http.MethodDelete, path, nil)
}

// MoveCard stores the new card order of the source and target lists.
func (c *Client) MoveCard(ctx context.Context, source, target domain.ListSummary) (*domain.Payload, error) {
	body := struct {
		Source domain.ListSummary `json:"source"`
		Target domain.ListSummary `json:"target"`
	}{source, target}
	return c.payload(ctx, "moveCard", http.MethodPut, "/api/cards/move", body)
}

// FetchLists loads every list of a board in board order.
func (c *Client) FetchLists(ctx context.Context, boardID string) ([]domain.List, error) {
	p, err := c.payload(ctx, "fetchLists", http.MethodGet, "/api/boards/"+url.PathEscape(boardID)+"/lists", nil)
	if err != nil {
		return nil, err
	}
	lists := make([]domain.List, 0, len(p.Result.Lists))
	for _, id := range p.Result.Lists {
		l, ok := p.Entities.Lists[id]
		if !ok {
			continue
		}
		if l.BoardID == "" {
			l.BoardID = boardID
		}
		lists = append(lists, l)
	}
	return lists, nil
}

func (c *Client) payload(ctx context.Context, op, method, path string, body interface{}) (*domain.Payload, error) {
	var out domain.Payload
	if err := c.do(ctx, op, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return gateway.NewError(op, 0, "invalid request", fmt.Errorf("%w: %v", gateway.ErrRejected, err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return gateway.NewError(op, 0, "invalid request", fmt.Errorf("%w: %v", gateway.ErrRejected, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("board service request failed",
			"op", op,
			"method", method,
			"path", path,
			"error", redact.Error(err))
		return gateway.NewError(op, 0, "Board service is unreachable", fmt.Errorf("%w: %v", gateway.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	c.logger.Debug("board service responded",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return gateway.NewError(op, resp.StatusCode, "Invalid response from board service", fmt.Errorf("%w: %v", gateway.ErrUnavailable, err))
	}
	return nil
}

// errorBody covers the error shapes the board service uses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var eb errorBody
	msg := ""
	if json.Unmarshal(raw, &eb) == nil {
		msg = eb.Message
		if msg == "" {
			msg = eb.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var cause error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		cause = gateway.ErrNotFound
	case resp.StatusCode >= 500:
		cause = gateway.ErrUnavailable
	default:
		cause = gateway.ErrRejected
	}

	return gateway.NewError(op, resp.StatusCode, msg, cause)
}
