// Package daemon manages the DeepWarren server's lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all server configuration.
type Config struct {
	World     WorldConfig     `toml:"world"`
	API       APIConfig       `toml:"api"`
	Storage   StorageConfig   `toml:"storage"`
	Model     ModelConfig     `toml:"model"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// WorldConfig seeds and names the dungeon a server instance serves.
type WorldConfig struct {
	Name string `toml:"name"`
	Seed int64  `toml:"seed"` // 0 = derive from current time at bootstrap
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host          string   `toml:"host"`
	Port          int      `toml:"port"`
	CORSOrigins   []string `toml:"cors_origins"`
	MaxConcurrent int      `toml:"max_concurrent"`
}

// StorageConfig controls where the world/player sqlite database lives.
type StorageConfig struct {
	Dir  string `toml:"dir"`
	File string `toml:"file"` // not read: the database is always Dir/state.db
}

// ModelConfig controls the LLM used for world-generation prose and NPC
// dialogue (C4/C5, and C13's monster-AI decision path).
type ModelConfig struct {
	Provider      string `toml:"provider"` // not read: infra/llm always uses the Anthropic API
	Default       string `toml:"default"`
	ContextLength int    `toml:"context_length"`
	APIKeyEnv     string `toml:"api_key_env"` // env var name holding the key, never the key itself
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Enabled        bool `toml:"enabled"`
	Prometheus     bool `toml:"prometheus"`
	PrometheusPort int  `toml:"prometheus_port"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := deepwarrenHome()
	return Config{
		World: WorldConfig{
			Name: "deepwarren",
			Seed: 0,
		},
		API: APIConfig{
			Host:          "127.0.0.1",
			Port:          4777,
			CORSOrigins:   []string{"*"},
			MaxConcurrent: 4,
		},
		Storage: StorageConfig{
			Dir:  homeDir,
			File: filepath.Join(homeDir, "world.db"),
		},
		Model: ModelConfig{
			Provider:      "openai",
			Default:       "gpt-4o-mini",
			ContextLength: 8192,
			APIKeyEnv:     "DEEPWARREN_MODEL_API_KEY",
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      filepath.Join(homeDir, "deepwarren.log"),
			MaxSizeMB: 50,
			MaxFiles:  5,
		},
		Telemetry: TelemetryConfig{
			Enabled:        true,
			Prometheus:     false, // Opt-in: expose /metrics
			PrometheusPort: 9090,
		},
	}
}

// LoadConfig reads config from ~/.deepwarren/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(deepwarrenHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.deepwarren/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(deepwarrenHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// deepwarrenHome returns the DeepWarren data directory.
func deepwarrenHome() string {
	if env := os.Getenv("DEEPWARREN_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".deepwarren")
}

// DeepWarrenHome is exported for use by other packages.
func DeepWarrenHome() string {
	return deepwarrenHome()
}
