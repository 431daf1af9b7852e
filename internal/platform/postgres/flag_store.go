package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/phrazzld/cardflow/internal/platform/logger"
	"github.com/phrazzld/cardflow/internal/store"
)

// PostgresFlagStore implements store.FlagStore on the persisted_flags table.
type PostgresFlagStore struct {
	db  store.DBTX
	now func() time.Time
}

var _ store.FlagStore = (*PostgresFlagStore)(nil)

// NewPostgresFlagStore creates a new PostgresFlagStore.
func NewPostgresFlagStore(db store.DBTX) *PostgresFlagStore {
	return &PostgresFlagStore{
		db:  db,
		now: time.Now,
	}
}

// Get reports whether key has a row that has not expired.
func (s *PostgresFlagStore) Get(ctx context.Context, key string) (bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM persisted_flags
			WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)
		)
	`

	var set bool
	if err := s.db.QueryRowContext(ctx, query, key, s.now().UTC()).Scan(&set); err != nil {
		logger.FromContext(ctx).Error("failed to read flag",
			"key", key,
			"error", err)
		return false, MapError("get", key, err)
	}
	return set, nil
}

// Set upserts key with an expiry ttl from now. A ttl of zero or less stores
// a NULL expiry.
func (s *PostgresFlagStore) Set(ctx context.Context, key string, ttl time.Duration) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	now := s.now().UTC()
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(ttl), Valid: true}
	}

	query := `
		INSERT INTO persisted_flags (key, expires_at, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, expiresAt, now); err != nil {
		logger.FromContext(ctx).Error("failed to write flag",
			"key", key,
			"error", err)
		return MapError("set", key, err)
	}
	return nil
}

// Claim inserts key, or revives an expired row, and reports whether it did.
// A live row is left untouched and yields false.
func (s *PostgresFlagStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}

	now := s.now().UTC()
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(ttl), Valid: true}
	}

	query := `
		INSERT INTO persisted_flags (key, expires_at, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
		WHERE persisted_flags.expires_at IS NOT NULL AND persisted_flags.expires_at <= $3
		RETURNING key
	`

	var claimed string
	err := s.db.QueryRowContext(ctx, query, key, expiresAt, now).Scan(&claimed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to claim flag",
			"key", key,
			"error", err)
		return false, MapError("claim", key, err)
	}
	return true, nil
}

// DeleteExpired removes expired rows and returns how many were deleted.
func (s *PostgresFlagStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM persisted_flags WHERE expires_at IS NOT NULL AND expires_at <= $1`,
		s.now().UTC())
	if err != nil {
		return 0, MapError("delete_expired", "", err)
	}
	return result.RowsAffected()
}
