package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/cardflow/internal/store"
)

// FlagStore is a mock implementation of store.FlagStore.
type FlagStore struct {
	GetFn func(ctx context.Context, key string) (bool, error)
	SetFn func(ctx context.Context, key string, ttl time.Duration) error

	// ClaimFn overrides Claim. When nil, Claim is Get followed by Set.
	ClaimFn func(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

var _ store.FlagStore = (*FlagStore)(nil)

// Get implements store.FlagStore.
func (m *FlagStore) Get(ctx context.Context, key string) (bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return false, nil
}

// Set implements store.FlagStore.
func (m *FlagStore) Set(ctx context.Context, key string, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, ttl)
	}
	return nil
}

// Claim implements store.FlagStore.
func (m *FlagStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.ClaimFn != nil {
		return m.ClaimFn(ctx, key, ttl)
	}
	set, err := m.Get(ctx, key)
	if err != nil || set {
		return false, err
	}
	if err := m.Set(ctx, key, ttl); err != nil {
		return false, err
	}
	return true, nil
}
