// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIBaseURL is the backend address used when none is configured.
const DefaultAPIBaseURL = "http://127.0.0.1:8000"

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Client holds the settings shared by the web console and the CLI.
type Client struct {
	APIBaseURL  string `env:"BLOGADMIN_API_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	LogLevel    string `env:"BLOGADMIN_LOG_LEVEL" envDefault:"info"`
	SessionFile string `env:"BLOGADMIN_SESSION_FILE"` // CLI only; empty means the user config dir
}

// Config holds the web console configuration loaded from environment variables.
type Config struct {
	Client

	SessionSecret   string        `env:"BLOGADMIN_SESSION_SECRET,required"`
	DBPath          string        `env:"BLOGADMIN_DB_PATH" envDefault:"./data/blogadmin.db"`
	RedisURL        string        `env:"BLOGADMIN_REDIS_URL"` // optional; replaces the SQLite session store
	ServerHost      string        `env:"BLOGADMIN_SERVER_HOST" envDefault:"localhost"`
	ServerPort      int           `env:"BLOGADMIN_SERVER_PORT" envDefault:"8080"`
	Env             string        `env:"BLOGADMIN_ENV" envDefault:"development"`
	SessionLifetime time.Duration `env:"BLOGADMIN_SESSION_LIFETIME" envDefault:"24h"`
	MetricsEnabled  bool          `env:"BLOGADMIN_METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisSessions returns true if sessions are kept in Redis.
func (c Config) UseRedisSessions() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// The CSRF key derived from it needs 32 bytes.
const MinSessionSecretLength = 32

// Load parses the web console configuration.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BLOGADMIN_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("BLOGADMIN_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("BLOGADMIN_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.SessionLifetime <= 0 {
		return nil, fmt.Errorf("BLOGADMIN_SESSION_LIFETIME must be positive, got %s", cfg.SessionLifetime)
	}

	return cfg, nil
}

// LoadClient parses only the settings the CLI needs.
func LoadClient() (*Client, error) {
	cfg := &Client{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BLOGADMIN_API_BASE_URL must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
