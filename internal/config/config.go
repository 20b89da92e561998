package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete moot configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Debate  DebateConfig  `mapstructure:"debate"`
	Panel   PanelConfig   `mapstructure:"panel"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig controls how the client reaches the debate service
type APIConfig struct {
	// BaseURL is the root URL of the debate service (default: "http://localhost:8787")
	BaseURL string `mapstructure:"base_url"`
	// Token is sent verbatim as a bearer header when non-empty.
	// Prefer setting it via the MOOT_API_TOKEN environment variable.
	Token string `mapstructure:"token"`
}

// DebateConfig controls the default shape of new debates
type DebateConfig struct {
	// Mode selects how rounds progress
	// Options: "autonomous", "supervised", "participatory"
	Mode string `mapstructure:"mode"`
	// MaxRounds caps the number of debate rounds per session (default: 3)
	MaxRounds int `mapstructure:"max_rounds"`
}

// PanelConfig describes the panel roster and provider credentials
type PanelConfig struct {
	// Panelists is the default roster sent with every new debate.
	// When empty, the server picks its own panel.
	Panelists []PanelistConfig `mapstructure:"panelists"`
	// ProviderKeys maps provider names to API keys, passed through to the
	// server verbatim (e.g. "anthropic", "openai")
	ProviderKeys map[string]string `mapstructure:"provider_keys"`
}

// PanelistConfig identifies one configured panel member
type PanelistConfig struct {
	// ID is the stable identifier used for tagging and role assignment
	ID string `mapstructure:"id"`
	// Name is the display name shown in transcripts and the TUI
	Name string `mapstructure:"name"`
	// Provider is the backing LLM provider (e.g. "anthropic")
	Provider string `mapstructure:"provider"`
	// Model is the provider-specific model identifier
	Model string `mapstructure:"model"`
}

// TUIConfig controls the live debate viewer
type TUIConfig struct {
	// Theme is the color theme for the viewer (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
	// MaxTranscriptLines limits how many transcript lines the viewport keeps
	MaxTranscriptLines int `mapstructure:"max_transcript_lines"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8787",
			Token:   "",
		},
		Debate: DebateConfig{
			Mode:      "autonomous",
			MaxRounds: 3,
		},
		Panel: PanelConfig{
			Panelists:    []PanelistConfig{},
			ProviderKeys: map[string]string{},
		},
		TUI: TUIConfig{
			Theme:              "default",
			MaxTranscriptLines: 2000,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// API defaults
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.token", defaults.API.Token)

	// Debate defaults
	viper.SetDefault("debate.mode", defaults.Debate.Mode)
	viper.SetDefault("debate.max_rounds", defaults.Debate.MaxRounds)

	// Panel defaults
	viper.SetDefault("panel.panelists", defaults.Panel.Panelists)
	viper.SetDefault("panel.provider_keys", defaults.Panel.ProviderKeys)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.max_transcript_lines", defaults.TUI.MaxTranscriptLines)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moot")
	}
	// Fall back to ~/.config/moot
	home, err := os.UserHomeDir()
	if err != nil {
		return ".moot"
	}
	return filepath.Join(home, ".config", "moot")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the directory where logs and session state live
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "moot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".moot"
	}
	return filepath.Join(home, ".local", "state", "moot")
}
