package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvClientID    = "TWITCH_CLIENT_ID"
	EnvToken       = "TWITCH_TOKEN"
	EnvAPIURL      = "TWITCH_API_URL"
	EnvHTTPTimeout = "TWITCH_HTTP_TIMEOUT"
	EnvBlocked     = "STREAM_FINDER_BLOCKED"
	EnvLogLevel    = "LOG_LEVEL"
)

var (
	ErrMissingClientID = errors.New("Client id missing: " + EnvClientID + " is not set") //nolint:staticcheck
	ErrMissingToken    = errors.New("OAuth token missing: " + EnvToken + " is not set")  //nolint:staticcheck
)

type Config struct {
	Twitch       TwitchConfig
	API          APIConfig
	BlockedNames []string
	LogLevel     string
}

type TwitchConfig struct {
	ClientID string
	Token    string
}

type APIConfig struct {
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Twitch: TwitchConfig{
			ClientID: os.Getenv(EnvClientID),
			Token:    os.Getenv(EnvToken),
		},
		API: APIConfig{
			BaseURL: os.Getenv(EnvAPIURL),
		},
		LogLevel: os.Getenv(EnvLogLevel),
	}

	if raw := os.Getenv(EnvHTTPTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvHTTPTimeout, err)
		}
		cfg.API.Timeout = timeout
	}

	if raw, ok := os.LookupEnv(EnvBlocked); ok {
		cfg.BlockedNames = ParseBlocked(raw)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Twitch.ClientID == "" {
		return ErrMissingClientID
	}
	if c.Twitch.Token == "" {
		return ErrMissingToken
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", EnvHTTPTimeout)
	}
	return nil
}

// ParseBlocked splits a comma-separated list of display names. Names are
// trimmed and lower-cased so they compare against lower-cased display names.
func ParseBlocked(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.ToLower(strings.TrimSpace(p)))
	}
	return names
}

func (c *Config) setDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.twitch.tv/helix"
	}
	c.API.BaseURL = strings.TrimSuffix(c.API.BaseURL, "/")
	if c.API.PageSize == 0 {
		c.API.PageSize = 100
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.BlockedNames == nil {
		// A single empty name never matches a real display name.
		c.BlockedNames = []string{""}
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}
