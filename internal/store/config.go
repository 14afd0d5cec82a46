package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const configFileName = "config.json"

type Config struct {
	// ServerURL is the admin API base, e.g. "https://api.example.com".
	ServerURL string `json:"serverUrl,omitempty" env:"MINEBOARD_SERVER"`

	// RequestTimeoutSeconds bounds each API call. Zero means the client
	// default.
	RequestTimeoutSeconds int `json:"requestTimeoutSeconds,omitempty" env:"MINEBOARD_REQUEST_TIMEOUT"`

	// RateLimitPerSecond caps outgoing API requests. Zero means the client
	// default.
	RateLimitPerSecond float64 `json:"rateLimitPerSecond,omitempty" env:"MINEBOARD_RATE_LIMIT"`

	// StatsRefreshSeconds is the mining statistics panel refetch interval.
	StatsRefreshSeconds int `json:"statsRefreshSeconds,omitempty" env:"MINEBOARD_STATS_REFRESH"`

	// DebugLog, when set, appends TUI debug lines to this path.
	DebugLog string `json:"debugLog,omitempty" env:"MINEBOARD_DEBUG_LOG"`
}

func (s Store) configPath() string {
	return filepath.Join(s.dir(), configFileName)
}

// LoadConfig reads the config file and applies environment overrides on top.
// A missing file yields defaults, not an error.
func (s Store) LoadConfig() (Config, error) {
	var cfg Config
	b, err := os.ReadFile(s.configPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", s.configPath(), err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env overrides: %w", err)
	}
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	return cfg, nil
}

func (s Store) SaveConfig(cfg Config) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.configPath() + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.configPath())
}
