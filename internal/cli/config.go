package cli

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/stylegen-labs/stylegen/internal/config"
	"github.com/stylegen-labs/stylegen/internal/npm"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configKeys = []string{
	config.KeyRegistry,
	config.KeyPackageManager,
	config.KeyConcurrency,
	config.KeyLogLevel,
	config.KeyHTTPTimeout,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write stylegen configuration stored at ~/.stylegen/config.yaml.

Keys: registry, package_manager, concurrency, log_level, http_timeout.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := validateConfigValue(key, value); err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

func validateConfigValue(key, value string) error {
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	switch key {
	case config.KeyPackageManager:
		if !npm.ValidManager(value) {
			return fmt.Errorf("package_manager must be one of npm, yarn, pnpm; got %q", value)
		}
	case config.KeyConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("concurrency must be a positive integer; got %q", value)
		}
	case config.KeyHTTPTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("http_timeout must be a duration such as 30s: %w", err)
		}
	}
	return nil
}
