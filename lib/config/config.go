// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the localuser
// lookup service.
//
// Configuration is loaded from a single file specified by:
//   - LOCALUSER_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
// Running without a config file at all is fine; [Default] covers the
// common case of one daemon on the standard socket.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSocketPath is where the lookup daemon listens when no
// configuration overrides it. /run is typically a tmpfs mount, so a
// stale socket never survives a reboot.
const DefaultSocketPath = "/run/localuser/lookup.sock"

// Config is the lookup daemon's configuration.
type Config struct {
	// SocketPath is the Unix socket the daemon listens on.
	SocketPath string `yaml:"socket_path"`

	// LogLevel selects the slog level: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`

	// UID, when set, overrides the per-request peer UID as the
	// "current user" of every lookup. The normal deployment leaves it
	// unset so that each client resolves "localuser" to its own
	// address; tests and single-user appliances pin it.
	UID *uint32 `yaml:"uid,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SocketPath: DefaultSocketPath,
		LogLevel:   "info",
	}
}

// Load loads configuration from the LOCALUSER_CONFIG environment
// variable, or returns [Default] when it is unset.
func Load() (*Config, error) {
	path := os.Getenv("LOCALUSER_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The file is
// the single source of truth: environment variables do not override
// its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects configurations the daemon cannot start with.
func (c *Config) validate() error {
	if c.SocketPath == "" {
		return fmt.Errorf("socket_path must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}
