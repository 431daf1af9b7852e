package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/cardflow/internal/config"
	"github.com/phrazzld/cardflow/internal/gateway"
	"github.com/phrazzld/cardflow/internal/gateway/rest"
	"github.com/phrazzld/cardflow/internal/gateway/trello"
)

// boardGateway is what the server needs from a board service client.
type boardGateway interface {
	gateway.Gateway
	gateway.BoardReader
}

func newGateway(cfg config.GatewayConfig, logger *slog.Logger) (boardGateway, error) {
	switch cfg.Kind {
	case "rest":
		c, err := rest.New(rest.Config{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout(),
			Token:   cfg.Token,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "trello":
		c, err := trello.New(trello.Config{
			Key:     cfg.TrelloKey,
			Token:   cfg.TrelloToken,
			BoardID: cfg.BoardID,
			BaseURL: cfg.BaseURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown gateway kind %q", cfg.Kind)
	}
}
