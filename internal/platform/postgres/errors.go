package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/cardflow/internal/store"
)

// PostgreSQL error classes that indicate the server could not serve the query.
const (
	// connectionExceptionClass covers connection failures (08xxx).
	connectionExceptionClass = "08"

	// insufficientResourcesClass covers out of memory/disk (53xxx).
	insufficientResourcesClass = "53"

	// operatorInterventionClass covers shutdown and cancellation (57xxx).
	operatorInterventionClass = "57"
)

// MapError maps a database error to a store error. Connection-level failures
// wrap store.ErrUnavailable; other errors are returned wrapped unchanged.
func MapError(op, key string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return store.NewStoreError("postgres", op, key, fmt.Errorf("%w: %w", store.ErrUnavailable, err))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case connectionExceptionClass, insufficientResourcesClass, operatorInterventionClass:
			return store.NewStoreError("postgres", op, key, fmt.Errorf("%w: %w", store.ErrUnavailable, err))
		}
		return store.NewStoreError("postgres", op, key, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return store.NewStoreError("postgres", op, key, fmt.Errorf("%w: %w", store.ErrUnavailable, err))
	}

	return store.NewStoreError("postgres", op, key, err)
}
