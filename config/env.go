package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/chinmay1088/tokentally/api"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "TOKENTALLY"

// Settings contains all configuration parameters for a run.
// Values come from TOKENTALLY_* variables and may be overridden by flags.
type Settings struct {
	ConfigPath  string        `envconfig:"CONFIG" default:"wallets.yaml"`
	Endpoint    string        `envconfig:"ENDPOINT" default:"https://wax.eosrio.io/v2/state/get_tokens"`
	MaxAttempts int           `envconfig:"RETRIES" default:"3"`
	Backoff     time.Duration `envconfig:"BACKOFF" default:"200ms"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads settings from the environment
func Load() (*Settings, error) {
	s := &Settings{}
	if err := envconfig.Process(EnvPrefix, s); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects values the client cannot work with
func (s *Settings) Validate() error {
	if s.MaxAttempts < 1 {
		return fmt.Errorf("retries must be at least 1, got %d", s.MaxAttempts)
	}
	if s.Backoff < 0 {
		return fmt.Errorf("backoff must not be negative, got %s", s.Backoff)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	return nil
}

// ClientOptions maps the settings onto api.Options
func (s *Settings) ClientOptions(logger *slog.Logger) api.Options {
	opts := api.DefaultOptions()
	opts.Endpoint = s.Endpoint
	opts.MaxAttempts = s.MaxAttempts
	opts.BackoffFactor = s.Backoff
	opts.Timeout = s.Timeout
	opts.Logger = logger
	return opts
}
