package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stylegen-labs/stylegen/internal/branding"
	"github.com/stylegen-labs/stylegen/internal/compose"
	"github.com/stylegen-labs/stylegen/internal/config"
	"github.com/stylegen-labs/stylegen/internal/jsondoc"
	"github.com/stylegen-labs/stylegen/internal/log"
	"github.com/stylegen-labs/stylegen/internal/manifest"
	"github.com/stylegen-labs/stylegen/internal/npm"
	"github.com/stylegen-labs/stylegen/internal/prefs"
	"github.com/stylegen-labs/stylegen/internal/templates"
)

type initOptions struct {
	yes            bool
	dryRun         bool
	skipInstall    bool
	packageManager string
	registry       string
	concurrency    int
}

var initOpts initOptions

func init() {
	f := initCmd.Flags()
	f.BoolVarP(&initOpts.yes, "yes", "y", false, "Accept every default answer without prompting")
	f.BoolVar(&initOpts.dryRun, "dry-run", false, "Print the composed files instead of writing them")
	f.BoolVar(&initOpts.skipInstall, "skip-install", false, "Write files but do not run the package manager")
	f.StringVar(&initOpts.packageManager, "package-manager", "", "Package manager used to install dependencies (npm, yarn, pnpm)")
	f.StringVar(&initOpts.registry, "registry", "", "npm registry used to resolve latest versions")
	f.IntVar(&initOpts.concurrency, "concurrency", 0, "Maximum parallel registry lookups")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Generate linter and formatter configuration",
	Long: `Ask for code-style preferences and write .eslintrc.json, and optionally
.stylelintrc and .prettierrc, into the project directory (default: current
directory). Scripts and devDependencies are merged into package.json and the
package manager is run unless --skip-install is given.

Existing configuration files are extended: keys the generator does not set
are kept, while keys it sets (including arrays such as "extends" and
"plugins") take the generated value.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runInit(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), dir, initOpts)
	},
}

func runInit(ctx context.Context, in io.Reader, out io.Writer, dir string, opts initOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := initSettings(opts)
	if err != nil {
		return err
	}

	projectDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}
	info, err := os.Stat(projectDir)
	if err != nil {
		return fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project directory %s is not a directory", projectDir)
	}

	reg := templates.Builtin()
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("plugin templates: %w", err)
	}

	ps, err := collectPreferences(ctx, reg, in, out, opts.yes)
	if err != nil {
		return err
	}
	initLog := log.WithComponent("init")
	initLog.Debug().Interface("preferences", ps.Options()).Msg("collected preferences")

	client := npm.NewClient(
		npm.WithRegistry(settings.Registry),
		npm.WithTimeout(settings.HTTPTimeout),
		npm.WithLogger(log.WithComponent("npm")),
	)

	c := &compose.Composer{
		ProjectDir:  projectDir,
		Registry:    reg,
		Resolver:    client,
		Installer:   newInstaller(settings.PackageManager, out),
		Concurrency: settings.Concurrency,
		SkipInstall: opts.skipInstall,
		Notify:      stepNotifier(out),
		Logger:      log.WithComponent("compose"),
	}

	if opts.dryRun {
		report, err := c.Plan(ctx, ps)
		if err != nil {
			return err
		}
		return printPlan(out, projectDir, report)
	}

	report, err := c.Run(ctx, ps)
	if err != nil {
		return err
	}
	printSummary(out, projectDir, settings.PackageManager, report)
	return nil
}

// initSettings layers command flags over the loaded configuration.
func initSettings(opts initOptions) (config.Settings, error) {
	s := config.Current()
	if opts.registry != "" {
		s.Registry = opts.registry
	}
	if s.Registry == "" {
		s.Registry = branding.DefaultRegistry()
	}
	if opts.packageManager != "" {
		s.PackageManager = opts.packageManager
	}
	if s.PackageManager == "" {
		s.PackageManager = npm.ManagerNPM
	}
	if opts.concurrency > 0 {
		s.Concurrency = opts.concurrency
	}

	if !npm.ValidManager(s.PackageManager) {
		return s, fmt.Errorf("unsupported package manager %q (want npm, yarn or pnpm)", s.PackageManager)
	}
	return s, nil
}

func collectPreferences(ctx context.Context, reg *templates.Registry, in io.Reader, out io.Writer, yes bool) (*prefs.PreferenceSet, error) {
	if yes {
		return prefs.Defaults(reg)
	}
	if f, ok := in.(*os.File); ok {
		if err := prefs.RequireTerminal(f); err != nil {
			return nil, err
		}
	}
	return prefs.Collect(ctx, reg, in, out)
}

func printPlan(out io.Writer, projectDir string, report *compose.Report) error {
	for _, res := range report.Results {
		if err := printDocument(out, relPath(projectDir, res.Path), res.Document); err != nil {
			return err
		}
	}
	return printDocument(out, manifest.PackageJSON, report.PackageJSON)
}

func printDocument(out io.Writer, title string, doc jsondoc.Document) error {
	data, err := jsondoc.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", title, err)
	}
	fmt.Fprintf(out, "%s\n%s", dim("--- "+title), data)
	return nil
}

func printSummary(out io.Writer, projectDir, manager string, report *compose.Report) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, green("Configuration written:"))
	for _, res := range report.Results {
		fmt.Fprintf(out, "  %s\n", relPath(projectDir, res.Path))
	}
	fmt.Fprintf(out, "  %s\n", manifest.PackageJSON)

	scripts := report.Fragment.ScriptNames()
	fmt.Fprintf(out, "\nScripts: %s\n", strings.Join(scripts, ", "))

	deps := report.Fragment.DevDependencies()
	fmt.Fprintln(out, "devDependencies:")
	for _, name := range report.Fragment.DevDependencyNames() {
		fmt.Fprintf(out, "  %s %s\n", name, dim(deps[name]))
	}
	if !report.Installed {
		fmt.Fprintf(out, "Run '%s install' to install %d devDependencies.\n", manager, len(deps))
	}
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
