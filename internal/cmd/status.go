package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/marks/internal/api"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show search service and local state",
	GroupID: groupSetup,
	Long: `Show the status of the search service and of local state:
- Indexed bookmark count and last index update
- Ollama (semantic ranking) availability
- Configuration, history and log file locations

Examples:
  marks status
  marks status --server http://nas.local:8080`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColorMode(cfg.UI.Color)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%smarks Status%s\n", colorBold, colorReset)
	fmt.Fprintln(out, strings.Repeat("-", 40))

	fmt.Fprintf(out, "\n%sService:%s\n", colorBold, colorReset)
	fmt.Fprintf(out, "  URL:      %s\n", client.BaseURL())
	if err := printServiceStatus(cmd.Context(), out, client); err != nil {
		fmt.Fprintf(out, "  Status:   %sunreachable%s (%v)\n", colorRed, colorReset, err)
	}

	fmt.Fprintf(out, "\n%sLocal State:%s\n", colorBold, colorReset)
	printFile(out, "Config:  ", configFilePath())
	if cfg.History.Backend == "memory" {
		fmt.Fprintf(out, "  History:  %s(memory, not persisted)%s\n", colorDim, colorReset)
	} else {
		printFile(out, "History: ", cfg.HistoryDBPath())
	}
	printFile(out, "Log:     ", cfg.LogFilePath())

	return nil
}

// printServiceStatus queries and prints the service status.
func printServiceStatus(ctx context.Context, out io.Writer, s api.Searcher) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	st, err := s.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  Status:   %sonline%s\n", colorGreen, colorReset)
	fmt.Fprintf(out, "  Indexed:  %d bookmarks\n", st.IndexCount)
	if st.UpdatedAt != "" {
		fmt.Fprintf(out, "  Updated:  %s\n", st.UpdatedAt)
	}
	if st.OllamaOK {
		fmt.Fprintf(out, "  Ollama:   %savailable%s\n", colorGreen, colorReset)
	} else {
		fmt.Fprintf(out, "  Ollama:   %soffline%s (keyword ranking only)\n", colorYellow, colorReset)
	}
	return nil
}

func printFile(out io.Writer, label, path string) {
	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "  %s %s (%s)\n", label, path, formatSize(info.Size()))
		return
	}
	fmt.Fprintf(out, "  %s %s %s(not created)%s\n", label, path, colorDim, colorReset)
}

// formatSize formats a byte count for display.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
