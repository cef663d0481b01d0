package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/runger/marks/internal/api"
	"github.com/runger/marks/internal/config"
	"github.com/runger/marks/internal/history"
	mlog "github.com/runger/marks/internal/log"
	"github.com/runger/marks/internal/storage"
)

// minTermWidth is the narrowest terminal the interactive view accepts.
const minTermWidth = 20

// loadConfig loads the file named by --config (or the default one) and
// applies --server.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if serverURL != "" {
		if err := cfg.Set("server.base_url", serverURL); err != nil {
			return nil, fmt.Errorf("--server: %w", err)
		}
	}
	return cfg, nil
}

// saveConfig writes cfg back to where loadConfig read it from.
func saveConfig(cfg *config.Config) error {
	if configPath != "" {
		return cfg.SaveToFile(configPath)
	}
	return cfg.Save()
}

// configFilePath returns the path loadConfig reads.
func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPaths().ConfigFile()
}

// openLogger opens the session log file. Logging never blocks a command:
// if the file cannot be opened, records are dropped.
func openLogger(cfg *config.Config) (*slog.Logger, func()) {
	level, err := mlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	f, err := mlog.OpenFile(cfg.LogFilePath())
	if err != nil {
		return mlog.Discard(), func() {}
	}
	logger := mlog.New(&mlog.Config{Output: f, Level: level})
	return logger, func() { f.Close() }
}

// newClient builds the search service client from cfg.
func newClient(cfg *config.Config) (*api.Client, error) {
	timeout := time.Duration(cfg.Server.TimeoutMs) * time.Millisecond
	return api.NewClient(cfg.Server.BaseURL, api.WithTimeout(timeout))
}

// openHistory opens the configured history backend. A SQLite store that
// cannot be opened degrades to a history that lives only for this process.
func openHistory(cfg *config.Config, logger *slog.Logger) (*history.Store, func()) {
	var kv storage.KV
	switch cfg.History.Backend {
	case "memory":
		kv = storage.NewMemory()
	default:
		store, err := storage.NewSQLiteStore(cfg.HistoryDBPath())
		if err != nil {
			logger.Warn("history database unavailable, using memory",
				"database_path", cfg.HistoryDBPath(),
				"error", err,
			)
			kv = storage.NewMemory()
		} else {
			kv = store
		}
	}

	h := history.New(kv, history.WithLogger(logger))
	return h, func() {
		if err := kv.Close(); err != nil {
			logger.Warn("failed to close history store", "error", err)
		}
	}
}

// columnsFromEnv parses $COLUMNS, returning 0 when unset or invalid.
func columnsFromEnv() int {
	n, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
