package cmd

import (
	"os"
	"testing"

	mlog "github.com/runger/marks/internal/log"
)

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"tui", "search", "similar", "status", "reindex", "history", "config", "version"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rootCmd missing subcommand %q", name)
		}
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	if err := rootCmd.Args(rootCmd, []string{"rust"}); err == nil {
		t.Error("marks should reject positional args (use --query or search)")
	}
}

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"config", "server", "color"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
	if rootCmd.Flags().Lookup("query") == nil {
		t.Error("missing --query flag on root")
	}
	if tuiCmd.Flags().ShorthandLookup("q") == nil {
		t.Error("missing -q shorthand on tui")
	}
}

func TestSimilarCmd_Args(t *testing.T) {
	if err := similarCmd.Args(similarCmd, []string{}); err == nil {
		t.Error("similar should require an id")
	}
	if err := similarCmd.Args(similarCmd, []string{"1", "2"}); err == nil {
		t.Error("similar should reject more than 1 argument")
	}
}

func TestOpenHistory_MemoryBackend(t *testing.T) {
	env := setupEnv(t)
	_, err := env.run(t, "config", "set", "history.backend", "memory")
	if err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	if _, err := env.run(t, "search", "rust"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	out, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if out != "No search history yet.\n" {
		t.Errorf("memory history should not outlive the process, got %q", out)
	}
	if _, err := os.Stat(env.dbPath); err == nil {
		t.Errorf("memory backend should not create %s", env.dbPath)
	}
}

func TestOpenHistory_FallsBackToMemory(t *testing.T) {
	env := setupEnv(t)

	configPath = env.configFile
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	// A directory cannot be opened as a database.
	cfg.History.DBPath = env.dir

	h, closeFn := openHistory(cfg, mlog.Discard())
	defer closeFn()

	h.Record("rust")
	if got := h.List(); len(got) != 1 || got[0] != "rust" {
		t.Errorf("fallback history List() = %v, want [rust]", got)
	}
}

func TestColumnsFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "100")
	if got := columnsFromEnv(); got != 100 {
		t.Errorf("columnsFromEnv() = %d, want 100", got)
	}
	t.Setenv("COLUMNS", "-3")
	if got := columnsFromEnv(); got != 0 {
		t.Errorf("columnsFromEnv() = %d, want 0", got)
	}
}
