package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/cardflow/internal/platform/memory"
	"github.com/phrazzld/cardflow/internal/platform/postgres"
	redisflags "github.com/phrazzld/cardflow/internal/platform/redis"
)

const (
	connectTimeout    = 5 * time.Second
	flagSweepInterval = 10 * time.Minute
)

// setupFlags opens the configured persisted flag backend.
func (app *application) setupFlags(ctx context.Context) error {
	cfg := app.config.Flags

	switch cfg.Backend {
	case "memory":
		app.flags = memory.NewFlagStore()

	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		app.redis = client
		fs, err := redisflags.NewFlagStore(client, "")
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := fs.Ping(pingCtx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		app.flags = fs

	case "postgres":
		db, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		app.db = db
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		pg := postgres.NewPostgresFlagStore(db)
		app.flags = pg
		app.flagSweep = pg

	default:
		return fmt.Errorf("unknown flags backend %q", cfg.Backend)
	}

	app.logger.Info("persisted flag store initialized", "backend", cfg.Backend)
	return nil
}

// openDatabase connects to Postgres and checks the connection.
func openDatabase(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// sweepFlags deletes expired Postgres flags until ctx is done.
func (app *application) sweepFlags(ctx context.Context) error {
	ticker := time.NewTicker(flagSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := app.flagSweep.DeleteExpired(ctx)
			if err != nil {
				app.logger.Warn("failed to delete expired flags", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Debug("deleted expired flags", "count", n)
			}
		}
	}
}
