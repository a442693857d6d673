// Package config holds the CLI client settings: defaults, RENTALS_*
// environment variables, then flags.
package config

import (
	"flag"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/rentals/internal/common"
)

// Config holds runtime settings for the rentals CLI.
//
// Fields:
//   - ServerURL: base URL of the JSON API.
//   - Token: session token used by commands that need one.
//   - Timeout: per-request HTTP timeout.
type Config struct {
	ServerURL string        `env:"RENTALS_SERVER_URL"`
	Token     string        `env:"RENTALS_TOKEN"`
	Timeout   time.Duration `env:"RENTALS_CLIENT_TIMEOUT"`
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Timeout = 10 * time.Second
}

// LoadConfig builds a Config from args (without the program name) and
// returns the positional arguments left after the flags.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "session token (or "+common.TokenEnvVar+")")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), nil
}
