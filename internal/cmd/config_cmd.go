package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/marks/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Get or set configuration values",
	GroupID: groupSetup,
	Long: `Get or set marks configuration values.

Without a subcommand, lists all configuration keys.

Configuration is stored in ~/.config/marks/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: server, history, ui, log

Examples:
  marks config                                   # List all keys
  marks config get server.base_url               # Show one value
  marks config set server.base_url http://nas:8080
  marks config set history.backend memory        # Do not persist history
  marks config path                              # Print the config file path`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColorMode(cfg.UI.Color)
	return listConfig(cmd.OutOrStdout(), cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	value, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColorMode(cfg.UI.Color)

	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%sSet %s = %s%s\n", colorGreen, key, value, colorReset)
	return nil
}

func listConfig(out io.Writer, cfg *config.Config) error {
	fmt.Fprintf(out, "%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	var failedKeys []string
	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}

		// Format empty values
		displayValue := value
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}
		fmt.Fprintf(out, "  %s%-20s%s %s\n", colorCyan, key, colorReset, displayValue)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%sConfig file: %s%s\n", colorDim, configFilePath(), colorReset)

	if len(failedKeys) > 0 {
		return fmt.Errorf("failed to read keys: %s", strings.Join(failedKeys, ", "))
	}
	return nil
}
