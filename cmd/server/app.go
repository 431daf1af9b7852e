package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/cardflow/internal/api"
	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/config"
	"github.com/phrazzld/cardflow/internal/dispatch"
	"github.com/phrazzld/cardflow/internal/effects"
	"github.com/phrazzld/cardflow/internal/gateway"
	"github.com/phrazzld/cardflow/internal/platform/postgres"
	"github.com/phrazzld/cardflow/internal/service/auth"
	"github.com/phrazzld/cardflow/internal/state"
	"github.com/phrazzld/cardflow/internal/store"
	"github.com/phrazzld/cardflow/internal/task"
)

// application holds the shared dependencies of the server so they can be
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Connections owned by the selected flag backend, if any.
	db    *sql.DB
	redis goredis.UniversalClient

	gateway    gateway.Gateway
	boards     gateway.BoardReader
	flags      store.FlagStore
	flagSweep  *postgres.PostgresFlagStore
	jwtService auth.JWTService

	state  *state.Store
	runner *task.Runner
	bus    *bus.Bus
}

// newApplication builds and starts every component. The effect handlers are
// subscribed before it returns, so intents can be put right away.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	gw, err := newGateway(cfg.Gateway, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway: %w", err)
	}
	app.gateway = gw
	app.boards = gw
	logger.Info("board gateway initialized", "kind", cfg.Gateway.Kind)

	if err := app.setupFlags(ctx); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize flag store: %w", err)
	}

	if cfg.Auth.JWTSecret != "" {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	}

	app.state = state.New(logger)
	app.seedBoard(ctx)

	app.runner = task.NewRunner(logger)
	app.bus = bus.New(app.runner, logger)
	app.bus.SubscribeAll(app.state)

	fx, err := effects.New(effects.Deps{
		Gateway:    app.gateway,
		Lists:      app.state,
		Flags:      app.flags,
		Bus:        app.bus,
		Logger:     logger,
		TipEnabled: cfg.Effects.TipEnabled,
	})
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create effect handlers: %w", err)
	}

	registry := dispatch.NewRegistry()
	if err := registry.RegisterAll(fx.Handlers()); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to register effect handlers: %w", err)
	}
	if err := dispatch.NewSequencer(registry, logger).Start(app.bus); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to start effect handlers: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// seedBoard loads the configured board into the state. A failure leaves the
// state empty; lists then appear as intents arrive.
func (app *application) seedBoard(ctx context.Context) {
	boardID := app.config.Gateway.BoardID
	if boardID == "" {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, app.config.Gateway.Timeout())
	defer cancel()

	lists, err := app.boards.FetchLists(fetchCtx, boardID)
	if err != nil {
		app.logger.Warn("failed to load board lists", "board_id", boardID, "error", err)
		return
	}
	app.state.Seed(boardID, lists)
	app.logger.Info("board lists loaded", "board_id", boardID, "list_count", len(lists))
}

func (app *application) router() http.Handler {
	deps := api.RouterDeps{
		Bus:    app.bus,
		State:  app.state,
		Logger: app.logger,
	}
	if app.jwtService != nil {
		deps.JWT = app.jwtService
	}
	return api.NewRouter(deps)
}

// cleanup releases connections. The bus is drained by Run.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
