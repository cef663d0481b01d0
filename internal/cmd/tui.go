package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	mlog "github.com/runger/marks/internal/log"
	"github.com/runger/marks/internal/render"
	"github.com/runger/marks/internal/sanitize"
	"github.com/runger/marks/internal/tui"
)

// maxQueryLen is the maximum length of an initial query in bytes.
const maxQueryLen = 512

var tuiQuery string

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Short:   "Search interactively (default command)",
	GroupID: groupCore,
	Long: `Open the interactive search view.

Type to search; results refresh 300ms after the last keystroke.
When the input is empty, recent searches are listed: use ↑/↓ to
highlight one and Enter to run it, ctrl+d to forget it.

Keys:
  tab        switch between the input and the results
  ↑/↓, j/k   move through results
  enter      print the selected URL and exit
  s          find bookmarks similar to the selected result
  b          back from similar results to the search
  ctrl+k     jump to the input and select its text
  esc        hide the history
  ctrl+c     quit

The chosen URL is written to stdout, so the view composes with
other tools:
  open "$(marks)"`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiQuery, "query", "q", "", "initial search query")
}

func runTUI(cmd *cobra.Command, args []string) error {
	query, err := sanitizeQuery(tuiQuery)
	if err != nil {
		return fmt.Errorf("--query: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Open the tty before anything else so a missing terminal fails fast.
	tty, err := openTTY()
	if err != nil {
		return err
	}
	defer tty.Close()

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	hist, closeHistory := openHistory(cfg, logger)
	defer closeHistory()

	// stdout may be a pipe when used as $(marks); detect colors from the
	// tty. SetColorProfile updates the default renderer in-place so
	// package-level styles pick it up.
	mode := colorMode
	if mode == "" {
		mode = cfg.UI.Color
	}
	styles := render.DefaultStyles()
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
		styles = render.PlainStyles()
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())
	}

	model := tui.NewModel(client, hist,
		tui.WithLogger(logger),
		tui.WithStyles(styles),
		tui.WithQuery(query),
	)

	mlog.LogSessionStart(logger, mlog.SessionInfo{
		SessionID: model.SessionID(),
		Version:   Version,
		BaseURL:   client.BaseURL(),
		Backend:   cfg.History.Backend,
		PID:       os.Getpid(),
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)

	finalModel, err := p.Run()
	if err != nil {
		mlog.LogSessionEnd(logger, model.SessionID(), "error")
		return fmt.Errorf("TUI error: %w", err)
	}

	m, ok := finalModel.(tui.Model)
	if !ok {
		return errors.New("unexpected model type")
	}

	if result := m.Result(); result != "" {
		mlog.LogSessionEnd(logger, m.SessionID(), "selected")
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	}
	mlog.LogSessionEnd(logger, m.SessionID(), "quit")
	return nil
}

// sanitizeQuery strips control characters and validates the query string.
func sanitizeQuery(q string) (string, error) {
	if q == "" {
		return "", nil
	}

	// Reject newlines before stripping.
	if strings.ContainsAny(q, "\n\r") {
		return "", errors.New("query must not contain newlines")
	}

	result := strings.TrimSpace(sanitize.StripControl(sanitize.ValidateUTF8(q)))
	if len(result) > maxQueryLen {
		result = strings.ToValidUTF8(result[:maxQueryLen], "")
	}
	return result, nil
}
