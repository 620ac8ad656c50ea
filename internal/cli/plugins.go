package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stylegen-labs/stylegen/internal/templates"
)

var pluginsJSON bool

func init() {
	pluginsCmd.Flags().BoolVar(&pluginsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(pluginsCmd)
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the ESLint plugins init can configure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlugins(cmd, templates.Builtin())
	},
}

type pluginEntry struct {
	Name    string `json:"name"`
	Package string `json:"package"`
	Default bool   `json:"default"`
}

func runPlugins(cmd *cobra.Command, reg *templates.Registry) error {
	var entries []pluginEntry
	for _, p := range reg.Plugins() {
		entries = append(entries, pluginEntry{Name: p.Name, Package: p.Package, Default: p.Default})
	}

	if pluginsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tPACKAGE\tDEFAULT")
	for _, e := range entries {
		def := "-"
		if e.Default {
			def = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Package, def)
	}
	return w.Flush()
}
