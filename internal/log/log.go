// Package log provides JSON-lines structured logging for marks sessions.
//
// Every record looks like:
//
//	{"ts":"2026-01-15T10:30:00Z","level":"info","msg":"search completed","session_id":"...","total":3}
//
// The interactive view owns the terminal, so loggers normally write to a
// file under the data directory rather than stderr.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
	}
}

// New creates a new JSON-lines structured logger.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// NewFromEnv creates a logger configured from environment variables.
// MARKS_DEBUG=1 enables debug logging.
func NewFromEnv() *slog.Logger {
	cfg := DefaultConfig()
	if os.Getenv("MARKS_DEBUG") == "1" {
		cfg.Debug = true
	}
	return New(cfg)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return New(&Config{Output: io.Discard})
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// OpenFile opens path for appending, creating parent directories as needed.
// The caller closes the returned file.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// SessionInfo holds information to log when an interactive session starts.
type SessionInfo struct {
	SessionID string
	Version   string
	BaseURL   string
	Backend   string
	PID       int
}

// LogSessionStart logs the start of an interactive session.
func LogSessionStart(logger *slog.Logger, info SessionInfo) {
	logger.Info("session started",
		"session_id", info.SessionID,
		"version", info.Version,
		"base_url", info.BaseURL,
		"history_backend", info.Backend,
		"pid", info.PID,
	)
}

// LogSessionEnd logs the end of an interactive session.
func LogSessionEnd(logger *slog.Logger, sessionID, reason string) {
	logger.Info("session ended", "session_id", sessionID, "reason", reason)
}

// LogStaleResponse logs a response dropped because a newer request superseded it.
func LogStaleResponse(logger *slog.Logger, kind string, requestID, current uint64) {
	logger.Debug("stale response discarded",
		"kind", kind,
		"request_id", requestID,
		"current_request_id", current,
	)
}

// LogRequestFailed logs a failed backend request.
func LogRequestFailed(logger *slog.Logger, kind string, err error) {
	logger.Warn("request failed", "kind", kind, "error", err)
}
