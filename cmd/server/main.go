// Package main runs the cardflow server: the HTTP intent intake, the intent
// bus with its effect handlers, and the board state projection.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/phrazzld/cardflow/internal/config"
	"github.com/phrazzld/cardflow/internal/platform/logger"
	"github.com/phrazzld/cardflow/internal/redact"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cardflow: %s\n", redact.Error(err))
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may be set another way.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("gateway", cfg.Gateway.Kind),
		slog.String("flags_backend", cfg.Flags.Backend),
		slog.Bool("auth_enabled", cfg.Auth.JWTSecret != ""))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}
