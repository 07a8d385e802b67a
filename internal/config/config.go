// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment key.
const Prefix = "PASSGEN_"

// Config holds server settings. Flags in cmd/server may override any field.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":8443"`

	// SessionKey signs session tokens; a random key is generated when empty,
	// which invalidates all sessions on restart.
	SessionKey string        `env:"SESSION_KEY"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// gRPC runs without TLS unless both are set.
	TLSCert string `env:"TLS_CERT"`
	TLSKey  string `env:"TLS_KEY"`

	RatePerSec float64 `env:"RATE_PER_SEC" envDefault:"10"`
	RateBurst  int     `env:"RATE_BURST" envDefault:"20"`

	HistoryDedup   bool          `env:"HISTORY_DEDUP" envDefault:"false"`
	HistoryIdleTTL time.Duration `env:"HISTORY_IDLE_TTL" envDefault:"1h"`

	// TrustProxy takes HTTP client addresses from forwarding headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	Dev             bool          `env:"DEV" envDefault:"false"`
}

var (
	ErrParsingConfig = errors.New("config: parse failed")
	ErrInvalid       = errors.New("config: invalid value")
)

// Load reads .env files (missing files are skipped) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrParsingConfig, f, err)
		}
	}
	return parse(env.Options{Prefix: Prefix})
}

// FromMap parses settings from an explicit environment, ignoring the process one.
func FromMap(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch {
	case c.HTTPAddr == "" && c.GRPCAddr == "":
		return fmt.Errorf("%w: at least one of HTTP_ADDR, GRPC_ADDR is required", ErrInvalid)
	case c.SessionTTL <= 0:
		return fmt.Errorf("%w: SESSION_TTL must be positive", ErrInvalid)
	case c.RatePerSec <= 0:
		return fmt.Errorf("%w: RATE_PER_SEC must be positive", ErrInvalid)
	case c.RateBurst < 1:
		return fmt.Errorf("%w: RATE_BURST must be >= 1", ErrInvalid)
	case (c.TLSCert == "") != (c.TLSKey == ""):
		return fmt.Errorf("%w: TLS_CERT and TLS_KEY must be set together", ErrInvalid)
	}
	return nil
}

// TLSEnabled reports whether gRPC should serve TLS.
func (c Config) TLSEnabled() bool { return c.TLSCert != "" && c.TLSKey != "" }
