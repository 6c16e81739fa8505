// internal/config/config.go
//
// Process configuration.
// Values come from the environment (optionally seeded from a .env file in
// development) and are parsed into Config with caarlos0/env.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DevSecret is the session signing secret used when none is configured.
// Load rejects it in production.
const DevSecret = "dev_secret_change_me"

// Config is the server configuration.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat is "json" or "console".
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// SessionSecret falls back to DevSecret when unset.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"rps_session"`
	SessionIdle   time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"rps"`
}

// Production reports whether the server runs with production cookie settings.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load reads an optional .env file, then parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment and validates it.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.SessionSecret == "" {
		c.SessionSecret = DevSecret
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that env tags cannot express.
func (c Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("config: SESSION_SECRET must not be empty")
	}
	if c.Production() && c.SessionSecret == DevSecret {
		return errors.New("config: SESSION_SECRET must be set in production")
	}
	if c.SessionIdle <= 0 {
		return errors.New("config: SESSION_IDLE_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		return errors.New("config: SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// SetupLogging configures the global zerolog logger from c.
func (c Config) SetupLogging(w io.Writer) {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
