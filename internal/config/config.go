// Package config loads and saves the crease configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all crease configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Playback   PlaybackConfig   `toml:"playback"`
	Teams      TeamsConfig      `toml:"teams"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds simulation service settings.
type ServerConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model,omitempty"`
}

// PlaybackConfig holds pacing defaults.
type PlaybackConfig struct {
	DelayMs    int `toml:"delay_ms"`
	NumMatches int `toml:"num_matches"`
}

// TeamsConfig holds the default fixture used to prefill the setup form.
type TeamsConfig struct {
	Team1Name    string   `toml:"team1_name"`
	Team1Players []string `toml:"team1_players,omitempty"`
	Team2Name    string   `toml:"team2_name"`
	Team2Players []string `toml:"team2_players,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8000",
		},
		Playback: PlaybackConfig{
			DelayMs:    500,
			NumMatches: 3,
		},
		Teams: TeamsConfig{
			Team1Name: "India",
			Team2Name: "Australia",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Delay returns the configured per-ball delay as a duration.
func (c Config) Delay() time.Duration {
	if c.Playback.DelayMs < 0 {
		return 0
	}
	return time.Duration(c.Playback.DelayMs) * time.Millisecond
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "crease")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "crease")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CachePath returns the path of the local stats cache database.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "crease", "stats.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "crease", "stats.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// ServerURL returns the service base URL from env var or config, in that
// order.
func ServerURL(cfg Config) string {
	if u := os.Getenv("CREASE_SERVER_URL"); u != "" {
		return u
	}
	return cfg.Server.BaseURL
}

// Model returns the prediction model from env var or config, in that
// order. Empty means the service default.
func Model(cfg Config) string {
	if m := os.Getenv("CREASE_MODEL"); m != "" {
		return m
	}
	return cfg.Server.Model
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
