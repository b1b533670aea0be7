package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from an optional config
// file and environment variables.
type Config struct {
	Env         string   `mapstructure:"env"`          // local, dev, production
	HTTPAddr    string   `mapstructure:"http_addr"`    // listen address for the API
	CORSOrigins []string `mapstructure:"cors_origins"` // allowed browser origins
	DB          DB       `mapstructure:"database"`
}

// DB contains database-related configuration.
type DB struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Validate checks the loaded configuration for obvious mistakes.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DB.Driver)
	}
	if c.HTTPAddr == "" {
		return errors.New("http_addr must not be empty")
	}
	return nil
}

// Load reads configuration from ./config/config.yaml (when present) and the
// environment. Environment variables win; nested keys map to ENV style
// names (database.driver -> DATABASE_DRIVER).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http_addr", "HTTP_ADDR")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = v.BindEnv("database.dsn", "DATABASE_DSN")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
