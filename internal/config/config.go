package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Gateway GatewayConfig `mapstructure:"gateway" validate:"required"`
	Flags   FlagsConfig   `mapstructure:"flags" validate:"required"`
	Effects EffectsConfig `mapstructure:"effects"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// GatewayConfig selects and configures the remote board service.
type GatewayConfig struct {
	Kind           string `mapstructure:"kind" validate:"required,oneof=rest trello"`
	BaseURL        string `mapstructure:"base_url" validate:"required_if=Kind rest,omitempty,url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
	// BoardID, when set, is loaded into the board state at startup.
	BoardID     string `mapstructure:"board_id"`
	TrelloKey   string `mapstructure:"trello_key" validate:"required_if=Kind trello"`
	TrelloToken string `mapstructure:"trello_token" validate:"required_if=Kind trello"`
}

// Timeout returns the per-request timeout as a duration.
func (c GatewayConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FlagsConfig selects the persisted flag backend.
type FlagsConfig struct {
	Backend     string `mapstructure:"backend" validate:"required,oneof=memory redis postgres"`
	RedisAddr   string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres,omitempty,url"`
}

// EffectsConfig tunes effect handler behavior.
type EffectsConfig struct {
	// TipEnabled turns on the one-time remove-card tip after a card is created.
	TipEnabled bool `mapstructure:"tip_enabled"`
}

// AuthConfig contains authentication settings for the intake API.
type AuthConfig struct {
	// JWTSecret enables bearer-token auth when set.
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=1,lte=43200"`
}

// TokenLifetime returns the lifetime of issued tokens as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}
