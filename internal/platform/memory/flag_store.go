package memory

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/cardflow/internal/store"
)

// FlagStore keeps flags in a map guarded by a mutex.
type FlagStore struct {
	mu    sync.Mutex
	flags map[string]time.Time // zero time means no expiry
	now   func() time.Time
}

var _ store.FlagStore = (*FlagStore)(nil)

// NewFlagStore creates an empty FlagStore using the wall clock.
func NewFlagStore() *FlagStore {
	return NewFlagStoreWithClock(time.Now)
}

// NewFlagStoreWithClock creates an empty FlagStore that reads time from now.
func NewFlagStoreWithClock(now func() time.Time) *FlagStore {
	return &FlagStore{
		flags: make(map[string]time.Time),
		now:   now,
	}
}

// Get reports whether key is set and unexpired. Expired keys are evicted.
func (s *FlagStore) Get(_ context.Context, key string) (bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.flags[key]
	if !ok {
		return false, nil
	}
	if !expiresAt.IsZero() && !s.now().Before(expiresAt) {
		delete(s.flags, key)
		return false, nil
	}
	return true, nil
}

// Set marks key for ttl.
func (s *FlagStore) Set(_ context.Context, key string, ttl time.Duration) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocked(key, ttl)
	return nil
}

// Claim sets key for ttl unless it is set and unexpired.
func (s *FlagStore) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if expiresAt, ok := s.flags[key]; ok && (expiresAt.IsZero() || s.now().Before(expiresAt)) {
		return false, nil
	}
	s.setLocked(key, ttl)
	return true, nil
}

func (s *FlagStore) setLocked(key string, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	s.flags[key] = expiresAt
}
