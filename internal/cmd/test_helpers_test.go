package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/runger/marks/internal/api"
)

// testEnv is a config file pointing at a fake search service, with
// history and logs under a temp dir.
type testEnv struct {
	dir        string
	configFile string
	dbPath     string
	logPath    string
	server     *httptest.Server
}

// newFakeService serves canned answers for the three endpoints.
func newFakeService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		resp := api.Response{Query: r.URL.Query().Get("q"), Results: []api.Result{}}
		switch resp.Query {
		case "rust":
			resp.Results = []api.Result{{
				ID: 1, URL: "https://a.com", Title: "Rust Book", Score: 0.91, Tags: []string{"lang"},
			}}
		case "xss":
			resp.Results = []api.Result{{
				ID: 9, URL: "https://evil.example/\"x", Title: "<script>alert(1)</script>", Score: 0.5,
			}}
		case "boom":
			http.Error(w, "internal", http.StatusInternalServerError)
			return
		}
		resp.Total = len(resp.Results)
		writeJSON(w, resp)
	})
	mux.HandleFunc("/api/similar", func(w http.ResponseWriter, r *http.Request) {
		resp := api.Response{Results: []api.Result{}}
		if r.URL.Query().Get("id") == "1" {
			resp.Results = []api.Result{{ID: 2, URL: "https://c.com/cargo", Title: "Cargo Book", Score: 0.82}}
			resp.Total = 1
		}
		writeJSON(w, resp)
	})
	mux.HandleFunc("/api/reindex", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = w.Write([]byte(`{"error":"method not allowed"}`))
			return
		}
		writeJSON(w, map[string]string{"status": "reindex started"})
	})
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Status{IndexCount: 42, UpdatedAt: "2026-01-02T03:04:05Z", OllamaOK: false})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// setupEnv writes a config for a fresh fake service and resets the
// command globals.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{dir: t.TempDir(), server: newFakeService(t)}
	env.configFile = filepath.Join(env.dir, "config.yaml")
	env.dbPath = filepath.Join(env.dir, "state.db")
	env.logPath = filepath.Join(env.dir, "logs", "marks.log")

	content := fmt.Sprintf(`server:
  base_url: %s
  timeout_ms: 2000
history:
  backend: sqlite
  db_path: %s
ui:
  color: never
log:
  level: debug
  file: %s
`, env.server.URL, env.dbPath, env.logPath)
	if err := os.WriteFile(env.configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("MARKS_SERVER", "")
	t.Setenv("MARKS_DEBUG", "")
	t.Setenv("MARKS_LOG_LEVEL", "")
	resetGlobals(t)
	return env
}

// resetGlobals restores flag-bound globals, which cobra leaves set
// between Execute calls.
func resetGlobals(t *testing.T) {
	t.Helper()
	reset := func() {
		configPath = ""
		serverURL = ""
		colorMode = ""
		tuiQuery = ""
		searchFormat = formatText
		searchLimit = api.SearchLimit
		similarFormat = formatText
		similarLimit = api.SimilarLimit
	}
	reset()
	t.Cleanup(reset)
}

// run executes the root command with args against env's config.
func (env *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlagsOnly()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", env.configFile}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlagsOnly() {
	serverURL = ""
	colorMode = ""
	searchFormat = formatText
	searchLimit = api.SearchLimit
	similarFormat = formatText
	similarLimit = api.SimilarLimit
}
