package cmd

import (
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	groupCore  = "core"
	groupSetup = "setup"
)

var (
	configPath string
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "marks",
	Short: "search your bookmarks from the terminal",
	Long: `marks - search your bookmarks from the terminal
  - type to search, results ranked by the marks service
  - pivot to similar bookmarks from any result
  - recent searches kept in a local history`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Search Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/marks/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "search service URL (overrides server.base_url)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color output: auto, always, or never (overrides ui.color)")
	rootCmd.Flags().StringVarP(&tuiQuery, "query", "q", "", "initial search query")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
