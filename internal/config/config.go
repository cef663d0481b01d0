package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the marks configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig locates the ranking service.
type ServerConfig struct {
	BaseURL   string `yaml:"base_url"`   // Service root, e.g. http://localhost:8080
	TimeoutMs int    `yaml:"timeout_ms"` // Per-request timeout
}

// HistoryConfig controls where search history is kept.
type HistoryConfig struct {
	Backend string `yaml:"backend"` // sqlite or memory
	DBPath  string `yaml:"db_path"` // SQLite file (overrides default)
}

// UIConfig holds interactive view settings.
type UIConfig struct {
	Color string `yaml:"color"` // auto, always, or never
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:   "http://localhost:8080",
			TimeoutMs: 5000,
		},
		History: HistoryConfig{
			Backend: "sqlite",
		},
		UI: UIConfig{
			Color: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "server.base_url" or "history.backend"
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "server":
		switch field {
		case "base_url":
			return c.Server.BaseURL, nil
		case "timeout_ms":
			return strconv.Itoa(c.Server.TimeoutMs), nil
		}
	case "history":
		switch field {
		case "backend":
			return c.History.Backend, nil
		case "db_path":
			return c.History.DBPath, nil
		}
	case "ui":
		if field == "color" {
			return c.UI.Color, nil
		}
	case "log":
		switch field {
		case "level":
			return c.Log.Level, nil
		case "file":
			return c.Log.File, nil
		}
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
	return "", fmt.Errorf("unknown field: %s", key)
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "server":
		switch field {
		case "base_url":
			if err := validateBaseURL(value); err != nil {
				return err
			}
			c.Server.BaseURL = value
			return nil
		case "timeout_ms":
			v, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid value for timeout_ms: %w", err)
			}
			if v <= 0 {
				return errors.New("invalid timeout_ms: must be positive")
			}
			c.Server.TimeoutMs = v
			return nil
		}
	case "history":
		switch field {
		case "backend":
			if !isValidHistoryBackend(value) {
				return fmt.Errorf("invalid backend: %s (must be sqlite or memory)", value)
			}
			c.History.Backend = value
			return nil
		case "db_path":
			c.History.DBPath = value
			return nil
		}
	case "ui":
		if field == "color" {
			if !isValidColorMode(value) {
				return fmt.Errorf("invalid color: %s (must be auto, always, or never)", value)
			}
			c.UI.Color = value
			return nil
		}
	case "log":
		switch field {
		case "level":
			if !isValidLogLevel(value) {
				return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", value)
			}
			c.Log.Level = value
			return nil
		case "file":
			c.Log.File = value
			return nil
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
	return fmt.Errorf("unknown field: %s", key)
}

func splitKey(key string) (section, field string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validateBaseURL(c.Server.BaseURL); err != nil {
		return fmt.Errorf("server.base_url: %w", err)
	}
	if c.Server.TimeoutMs <= 0 {
		return errors.New("server.timeout_ms must be > 0")
	}
	if !isValidHistoryBackend(c.History.Backend) {
		return fmt.Errorf("history.backend must be sqlite or memory (got: %s)", c.History.Backend)
	}
	if !isValidColorMode(c.UI.Color) {
		return fmt.Errorf("ui.color must be auto, always, or never (got: %s)", c.UI.Color)
	}
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: must be http(s)://host[:port]", raw)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidHistoryBackend(backend string) bool {
	switch backend {
	case "sqlite", "memory":
		return true
	default:
		return false
	}
}

func isValidColorMode(mode string) bool {
	switch mode {
	case "auto", "always", "never":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MARKS_SERVER"); v != "" {
		if validateBaseURL(v) == nil {
			c.Server.BaseURL = v
		}
	}
	if v := os.Getenv("MARKS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("MARKS_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"server.base_url",
		"server.timeout_ms",
		"history.backend",
		"history.db_path",
		"ui.color",
		"log.level",
		"log.file",
	}
}

// HistoryDBPath returns the configured SQLite path or the default one.
func (c *Config) HistoryDBPath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return DefaultPaths().DatabaseFile()
}

// LogFilePath returns the configured log file or the default one.
func (c *Config) LogFilePath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultPaths().LogFile()
}
