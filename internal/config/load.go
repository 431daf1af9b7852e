package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CARDFLOW_SERVER_PORT.
const EnvPrefix = "CARDFLOW"

// defaults lists every key with its default value. Registering each key is
// what lets viper resolve it from the environment during Unmarshal.
var defaults = map[string]interface{}{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.shutdown_timeout_seconds": 15,
	"gateway.kind":                    "rest",
	"gateway.base_url":                "",
	"gateway.token":                   "",
	"gateway.timeout_seconds":         10,
	"gateway.board_id":                "",
	"gateway.trello_key":              "",
	"gateway.trello_token":            "",
	"flags.backend":                   "memory",
	"flags.redis_addr":                "",
	"flags.database_url":              "",
	"effects.tip_enabled":             true,
	"auth.jwt_secret":                 "",
	"auth.token_lifetime_minutes":     60,
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load(viper.New(), "")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching for config.yaml.
func LoadFile(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
