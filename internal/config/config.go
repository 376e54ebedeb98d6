// Package config loads service configuration: compiled defaults, then an
// optional TOML file (only keys the file defines overlay the defaults), then
// FORGE_* environment overrides, in that order.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config carries everything the service and CLIs need at startup.
type Config struct {
	// ListenAddr is the API bind address.
	ListenAddr string `toml:"listen_addr" env:"FORGE_LISTEN_ADDR"`

	// DatabasePath is the SQLite catalog location.
	DatabasePath string `toml:"database_path" env:"FORGE_DATABASE_PATH"`

	// FrameSize overrides the sprite frame edge when positive.
	FrameSize int `toml:"frame_size" env:"FORGE_FRAME_SIZE"`

	// Workers caps the drop render pool. Zero means GOMAXPROCS.
	Workers int `toml:"workers" env:"FORGE_WORKERS"`

	// PolicyScript points at a default drop policy body, applied when a drop
	// request carries no script of its own.
	PolicyScript string `toml:"policy_script" env:"FORGE_POLICY_SCRIPT"`

	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level" env:"FORGE_LOG_LEVEL"`

	// BearerToken protects the API when set.
	BearerToken string `toml:"bearer_token" env:"FORGE_BEARER_TOKEN"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		ListenAddr:   ":8787",
		DatabasePath: "spriteforge.db",
		LogLevel:     "info",
	}
}

// Load builds the effective configuration. An empty path skips the file
// layer; a missing key in the file leaves the default untouched.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var raw Config
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}

		if meta.IsDefined("listen_addr") {
			cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
		}
		if meta.IsDefined("database_path") {
			cfg.DatabasePath = strings.TrimSpace(raw.DatabasePath)
		}
		if meta.IsDefined("frame_size") {
			cfg.FrameSize = raw.FrameSize
		}
		if meta.IsDefined("workers") {
			cfg.Workers = raw.Workers
		}
		if meta.IsDefined("policy_script") {
			cfg.PolicyScript = strings.TrimSpace(raw.PolicyScript)
		}
		if meta.IsDefined("log_level") {
			cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
		}
		if meta.IsDefined("bearer_token") {
			cfg.BearerToken = strings.TrimSpace(raw.BearerToken)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
