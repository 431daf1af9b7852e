package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/gateway"
)

// Gateway is a mock implementation of gateway.Gateway that counts calls.
type Gateway struct {
	CreateCardFn          func(ctx context.Context, listID, text string) (*domain.Payload, error)
	RemoveCardFn          func(ctx context.Context, cardID string) (*domain.Payload, error)
	FetchCardFn           func(ctx context.Context, cardID string) (*domain.Payload, error)
	UpdateCardFn          func(ctx context.Context, id string, props map[string]json.RawMessage) (*domain.Payload, error)
	AddColorToCardFn      func(ctx context.Context, cardID, colorID string) (*domain.Payload, error)
	RemoveColorFromCardFn func(ctx context.Context, cardID, colorID string) (*domain.Payload, error)
	MoveCardFn            func(ctx context.Context, source, target domain.ListSummary) (*domain.Payload, error)

	mu    sync.Mutex
	calls map[string]int
}

var _ gateway.Gateway = (*Gateway)(nil)

func (m *Gateway) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
}

// Calls returns how many times op was invoked.
func (m *Gateway) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls returns the number of invocations across all operations.
func (m *Gateway) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// CreateCard implements gateway.Gateway.
func (m *Gateway) CreateCard(ctx context.Context, listID, text string) (*domain.Payload, error) {
	m.record("CreateCard")
	if m.CreateCardFn != nil {
		return m.CreateCardFn(ctx, listID, text)
	}
	return &domain.Payload{}, nil
}

// RemoveCard implements gateway.Gateway.
func (m *Gateway) RemoveCard(ctx context.Context, cardID string) (*domain.Payload, error) {
	m.record("RemoveCard")
	if m.RemoveCardFn != nil {
		return m.RemoveCardFn(ctx, cardID)
	}
	return &domain.Payload{}, nil
}

// FetchCard implements gateway.Gateway.
func (m *Gateway) FetchCard(ctx context.Context, cardID string) (*domain.Payload, error) {
	m.record("FetchCard")
	if m.FetchCardFn != nil {
		return m.FetchCardFn(ctx, cardID)
	}
	return &domain.Payload{}, nil
}

// UpdateCard implements gateway.Gateway.
func (m *Gateway) UpdateCard(ctx context.Context, id string, props map[string]json.RawMessage) (*domain.Payload, error) {
	m.record("UpdateCard")
	if m.UpdateCardFn != nil {
		return m.UpdateCardFn(ctx, id, props)
	}
	return &domain.Payload{}, nil
}

// AddColorToCard implements gateway.Gateway.
func (m *Gateway) AddColorToCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error) {
	m.record("AddColorToCard")
	if m.AddColorToCardFn != nil {
		return m.AddColorToCardFn(ctx, cardID, colorID)
	}
	return &domain.Payload{}, nil
}

// RemoveColorFromCard implements gateway.Gateway.
func (m *Gateway) RemoveColorFromCard(ctx context.Context, cardID, colorID string) (*domain.Payload, error) {
	m.record("RemoveColorFromCard")
	if m.RemoveColorFromCardFn != nil {
		return m.RemoveColorFromCardFn(ctx, cardID, colorID)
	}
	return &domain.Payload{}, nil
}

// MoveCard implements gateway.Gateway.
func (m *Gateway) MoveCard(ctx context.Context, source, target domain.ListSummary) (*domain.Payload, error) {
	m.record("MoveCard")
	if m.MoveCardFn != nil {
		return m.MoveCardFn(ctx, source, target)
	}
	return &domain.Payload{}, nil
}
