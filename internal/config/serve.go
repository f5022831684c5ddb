package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// ServeConfig configures the `serve` command. Flags override these values.
type ServeConfig struct {
	SSHAddr     string        `env:"LEARNARCADE_SSH_ADDR" envDefault:":23234"`
	HTTPAddr    string        `env:"LEARNARCADE_HTTP_ADDR" envDefault:":8080"`
	HostKeyPath string        `env:"LEARNARCADE_HOST_KEY"`
	DBPath      string        `env:"LEARNARCADE_DB" envDefault:"~/.learnarcade/library.db"`
	ContentDir  string        `env:"LEARNARCADE_CONTENT_DIR"`
	LogLevel    string        `env:"LEARNARCADE_LOG_LEVEL" envDefault:"info"`
	IdleTimeout time.Duration `env:"LEARNARCADE_IDLE_TIMEOUT" envDefault:"30m"`
	TickRate    int           `env:"LEARNARCADE_TICK_RATE" envDefault:"10"`
}

// LoadServe reads the server configuration from the environment.
func LoadServe() (ServeConfig, error) {
	cfg, err := env.ParseAs[ServeConfig]()
	if err != nil {
		return ServeConfig{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}

// Level returns the configured log level, defaulting to info.
func (c ServeConfig) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
