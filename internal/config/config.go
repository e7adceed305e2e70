// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the server configuration.
type Config struct {
	Port            string        `env:"APP_PORT" envDefault:"3000"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	StorageDriver   string        `env:"STORAGE_DRIVER" envDefault:"file"`
	DataFile        string        `env:"DATA_FILE" envDefault:"data.json"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"procurement.db"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"procurement"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORSAllowOrigin string        `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
}

// IsDevelopment reports whether the process runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AuthEnabled reports whether mutating routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverFile, DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Load reads an optional .env file, then parses the environment. Variables
// already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
