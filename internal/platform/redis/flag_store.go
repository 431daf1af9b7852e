package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/cardflow/internal/store"
)

// DefaultKeyPrefix namespaces flag keys in a shared Redis.
const DefaultKeyPrefix = "cardflow:flag:"

// FlagStore stores flags as Redis keys.
type FlagStore struct {
	client goredis.UniversalClient
	prefix string
}

var _ store.FlagStore = (*FlagStore)(nil)

// NewFlagStore creates a FlagStore over client. An empty prefix uses
// DefaultKeyPrefix.
func NewFlagStore(client goredis.UniversalClient, prefix string) (*FlagStore, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &FlagStore{client: client, prefix: prefix}, nil
}

// Get reports whether the flag key exists.
func (s *FlagStore) Get(ctx context.Context, key string) (bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}

	n, err := s.client.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		return false, store.NewStoreError("redis", "get", key, fmt.Errorf("%w: %v", store.ErrUnavailable, err))
	}
	return n > 0, nil
}

// Set writes the flag key with ttl as its expiry.
func (s *FlagStore) Set(ctx context.Context, key string, ttl time.Duration) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}

	if err := s.client.Set(ctx, s.prefix+key, "1", ttl).Err(); err != nil {
		return store.NewStoreError("redis", "set", key, fmt.Errorf("%w: %v", store.ErrUnavailable, err))
	}
	return nil
}

// Claim writes the flag key with SET NX so only one caller sets it.
func (s *FlagStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}
	if ttl < 0 {
		ttl = 0
	}

	won, err := s.client.SetNX(ctx, s.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, store.NewStoreError("redis", "claim", key, fmt.Errorf("%w: %v", store.ErrUnavailable, err))
	}
	return won, nil
}

// Ping checks the connection to Redis.
func (s *FlagStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
