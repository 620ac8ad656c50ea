package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stylegen-labs/stylegen/internal/config"
	"github.com/stylegen-labs/stylegen/internal/jsondoc"
	"github.com/stylegen-labs/stylegen/internal/manifest"
	"github.com/stylegen-labs/stylegen/internal/npm"
	"github.com/stylegen-labs/stylegen/internal/templates"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check templates, registry access and package manager",
	Long:  `Run diagnostic checks on the embedded templates and the environment init depends on.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		client := npm.NewClient(npm.WithRegistry(s.Registry), npm.WithTimeout(s.HTTPTimeout))
		return runDoctor(cmd.Context(), cmd.OutOrStdout(), templates.Builtin(), client, s.PackageManager, ".")
	},
}

func runDoctor(ctx context.Context, out io.Writer, reg *templates.Registry, client *npm.Client, manager, projectDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var failed []string

	fmt.Fprintln(out, "Templates check:")
	if err := reg.Validate(); err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		failed = append(failed, "templates")
	} else {
		fmt.Fprintf(out, "  [ OK ] %d plugin overlays valid\n", len(reg.Names()))
	}

	fmt.Fprintln(out, "Registry check:")
	latest, err := client.Latest(ctx, "eslint")
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %s: %v\n", client.Registry(), err)
		failed = append(failed, "registry")
	} else {
		fmt.Fprintf(out, "  [ OK ] %s (eslint@%s)\n", client.Registry(), latest)
		checkProjectConstraint(out, projectDir, latest)
	}

	fmt.Fprintln(out, "Runtime check:")
	for _, name := range []string{"node", manager} {
		path, err := exec.LookPath(name)
		if err != nil {
			fmt.Fprintf(out, "  [MISS] %s not found\n", name)
			failed = append(failed, name)
			continue
		}
		fmt.Fprintf(out, "  [ OK ] %s found at %s\n", name, path)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d check(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// checkProjectConstraint warns when the project's eslint devDependency no
// longer admits the latest release. Missing package.json is not an error.
func checkProjectConstraint(out io.Writer, projectDir, latest string) {
	pkg, ok, err := jsondoc.Read(filepath.Join(projectDir, manifest.PackageJSON))
	if err != nil {
		fmt.Fprintf(out, "  [WARN] %v\n", err)
		return
	}
	if !ok {
		return
	}
	constraint, _ := jsondoc.Lookup(pkg, "devDependencies.eslint")
	c, isString := constraint.(string)
	if !isString {
		return
	}
	inRange, err := npm.Satisfies(c, latest)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [WARN] package.json eslint %q: %v\n", c, err)
	case inRange:
		fmt.Fprintf(out, "  [ OK ] package.json eslint %s admits %s\n", c, latest)
	default:
		fmt.Fprintf(out, "  [WARN] package.json eslint %s is behind %s (re-run init to update)\n", c, latest)
	}
}
