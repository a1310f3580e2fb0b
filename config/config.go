package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"go-simpler.org/env"
)

const (
	BackendHugot = "hugot"
	BackendVader = "vader"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" default:"dev"`
	Host     string `env:"HOST" default:"0.0.0.0"`
	Port     string `env:"PORT" default:"5000"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`
	NoColor  bool   `env:"LOG_NO_COLOR" default:"false"`

	ClassifierBackend string `env:"CLASSIFIER_BACKEND" default:"hugot"`
	PrimaryModel      string `env:"PRIMARY_MODEL" default:"hun3359/klue-bert-base-sentiment"`
	FallbackModel     string `env:"FALLBACK_MODEL" default:"cardiffnlp/twitter-xlm-roberta-base-sentiment"`
	ModelDir          string `env:"MODEL_DIR" default:"./models"`

	HealthcheckInterval time.Duration `env:"HEALTHCHECK_INTERVAL" default:"15s"`
	ProbeTimeout        time.Duration `env:"PROBE_TIMEOUT" default:"10s"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads Config from the process environment. Call LoadEnv first to pull
// in the env file for the current APP_ENV.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	cfg.ClassifierBackend = strings.ToLower(strings.TrimSpace(cfg.ClassifierBackend))
	switch cfg.ClassifierBackend {
	case BackendHugot, BackendVader:
	default:
		return fmt.Errorf("CLASSIFIER_BACKEND must be %q or %q, got %q", BackendHugot, BackendVader, cfg.ClassifierBackend)
	}

	if cfg.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if cfg.ClassifierBackend == BackendHugot && (cfg.PrimaryModel == "" || cfg.FallbackModel == "") {
		return fmt.Errorf("PRIMARY_MODEL and FALLBACK_MODEL are required for the hugot backend")
	}
	if cfg.HealthcheckInterval <= 0 {
		return fmt.Errorf("HEALTHCHECK_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
