package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:     "reindex",
	Short:   "Ask the search service to rebuild its index",
	GroupID: groupSetup,
	Long: `Ask the search service to rebuild its bookmark index.

The rebuild runs in the background on the service; this command returns
as soon as it has started. Use 'marks status' to see the updated index
count and time once it finishes.

Examples:
  marks reindex
  marks reindex --server http://nas.local:8080`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColorMode(cfg.UI.Color)

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	res, err := client.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}
	logger.Info("reindex requested", "base_url", client.BaseURL(), "status", res.Status)

	status := res.Status
	if status == "" {
		status = "reindex accepted"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s: %s\n", colorGreen, status, colorReset, client.BaseURL())
	return nil
}
