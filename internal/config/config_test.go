package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forge.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ListenAddr != ":8787" {
		t.Errorf("Expected listen addr :8787, got %s", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "spriteforge.db" {
		t.Errorf("Expected database path spriteforge.db, got %s", cfg.DatabasePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.FrameSize != 0 {
		t.Errorf("Expected frame size 0, got %d", cfg.FrameSize)
	}
	if cfg.Workers != 0 {
		t.Errorf("Expected workers 0, got %d", cfg.Workers)
	}
	if cfg.BearerToken != "" {
		t.Errorf("Expected empty bearer token, got %s", cfg.BearerToken)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := writeConfigFile(t, `
listen_addr = "127.0.0.1:9000"
workers = 4
log_level = " debug "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("Expected listen addr 127.0.0.1:9000, got %s", cfg.ListenAddr)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected workers 4, got %d", cfg.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected trimmed log level debug, got %q", cfg.LogLevel)
	}

	// Keys the file does not define keep their defaults.
	if cfg.DatabasePath != "spriteforge.db" {
		t.Errorf("Expected default database path, got %s", cfg.DatabasePath)
	}
	if cfg.FrameSize != 0 {
		t.Errorf("Expected default frame size, got %d", cfg.FrameSize)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
listen_addr = "127.0.0.1:9000"
database_path = "file.db"
`)

	t.Setenv("FORGE_LISTEN_ADDR", ":7070")
	t.Setenv("FORGE_WORKERS", "8")
	t.Setenv("FORGE_BEARER_TOKEN", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ListenAddr != ":7070" {
		t.Errorf("Expected env listen addr :7070, got %s", cfg.ListenAddr)
	}
	if cfg.Workers != 8 {
		t.Errorf("Expected env workers 8, got %d", cfg.Workers)
	}
	if cfg.BearerToken != "s3cret" {
		t.Errorf("Expected env bearer token, got %q", cfg.BearerToken)
	}

	// File keys without env overrides still apply.
	if cfg.DatabasePath != "file.db" {
		t.Errorf("Expected file database path, got %s", cfg.DatabasePath)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := writeConfigFile(t, `listen_addr = [not toml`)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for missing config file")
	}
}
