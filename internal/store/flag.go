package store

import (
	"context"
	"time"
)

// FlagStore persists boolean flags that expire after a time-to-live. A flag is
// set while it exists and has not expired.
type FlagStore interface {
	// Get reports whether key is currently set.
	Get(ctx context.Context, key string) (bool, error)

	// Set marks key as set for ttl. A ttl of zero or less never expires.
	// Setting an existing key replaces its expiry.
	Set(ctx context.Context, key string, ttl time.Duration) error

	// Claim sets key for ttl only if it is not currently set and reports
	// whether this call set it. Concurrent claims of one key have a single
	// winner per flag lifetime.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// ValidateKey returns ErrEmptyKey when key is blank.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
