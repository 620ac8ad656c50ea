// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only edits the YAML.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	StateFile       string `yaml:"state_file"`
	DefaultRegistry string `yaml:"default_registry"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:         "stylegen",
			DisplayName:     "StyleGen",
			Description:     "Interactive ESLint, Stylelint and Prettier setup",
			HomeDir:         ".stylegen",
			EnvPrefix:       "STYLEGEN",
			StateFile:       ".stylegen.yaml",
			DefaultRegistry: "https://registry.npmjs.org",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "stylegen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".stylegen").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "STYLEGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// StateFile returns the per-project state file name that holds the
// persisted code style answers.
func StateFile() string { load(); return defaults.StateFile }

// DefaultRegistry returns the npm registry used when none is configured.
func DefaultRegistry() string { load(); return defaults.DefaultRegistry }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("REGISTRY") → "STYLEGEN_REGISTRY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
