package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stylegen-labs/stylegen/internal/branding"
	"github.com/stylegen-labs/stylegen/internal/config"
	"github.com/stylegen-labs/stylegen/internal/log"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` asks a few code-style questions and writes matching ESLint,
Stylelint and Prettier configuration into a JavaScript project, together with
the package.json scripts and devDependencies they need.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := logLevel
		if level == "" {
			level = config.Current().LogLevel
		}
		log.Configure(log.Config{Level: level})
		baseLog := log.Base()
		baseLog.Debug().Str("config", config.FilePath()).Str("level", level).Msg("configuration loaded")
	},
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed as a single diagnostic line on stderr.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
