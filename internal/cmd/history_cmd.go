package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runger/marks/internal/history"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show or edit the search history",
	GroupID: groupCore,
	Long: `Show the recent searches offered by the interactive view.

Only searches that returned at least one result are kept, most recent
first, up to 20 entries. Repeating a search (in any letter case) moves
it back to the top.

Examples:
  marks history                  # List recent searches
  marks history remove "rust"    # Forget one search
  marks history clear            # Forget all searches`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <query>",
	Short: "Forget one search (exact match)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all searches",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// withHistory opens the configured history store for the duration of fn.
func withHistory(fn func(h *history.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColorMode(cfg.UI.Color)

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	h, closeHistory := openHistory(cfg, logger)
	defer closeHistory()

	return fn(h)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withHistory(func(h *history.Store) error {
		printHistory(cmd.OutOrStdout(), h.List())
		return nil
	})
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	return withHistory(func(h *history.Store) error {
		return removeHistory(cmd.OutOrStdout(), h, args[0])
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	return withHistory(func(h *history.Store) error {
		n := h.Len()
		h.Clear()
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d search(es)\n", n)
		return nil
	})
}

func printHistory(out io.Writer, entries []string) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No search history yet.")
		return
	}
	for i, q := range entries {
		fmt.Fprintf(out, "%s%2d%s  %s\n", colorDim, i+1, colorReset, q)
	}
}

func removeHistory(out io.Writer, h *history.Store, query string) error {
	before := h.Len()
	h.Remove(query)
	if h.Len() == before {
		return fmt.Errorf("not in history: %q", query)
	}
	fmt.Fprintf(out, "Removed %q\n", query)
	return nil
}
