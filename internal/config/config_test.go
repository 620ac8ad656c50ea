package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCurrent_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())

	Load()
	s := Current()

	if s.Registry != "https://registry.npmjs.org" {
		t.Errorf("Registry = %q", s.Registry)
	}
	if s.PackageManager != "npm" {
		t.Errorf("PackageManager = %q, want npm", s.PackageManager)
	}
	if s.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", s.Concurrency)
	}
	if s.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", s.HTTPTimeout)
	}
}

func TestCurrent_EnvOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STYLEGEN_PACKAGE_MANAGER", "pnpm")
	t.Setenv("STYLEGEN_CONCURRENCY", "0")

	Load()
	s := Current()

	if s.PackageManager != "pnpm" {
		t.Errorf("PackageManager = %q, want pnpm", s.PackageManager)
	}
	if s.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want clamp to 1", s.Concurrency)
	}
}

func TestSet_WritesFile(t *testing.T) {
	resetViper(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	Load()
	if err := Set(KeyRegistry, "https://npm.example.com"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".stylegen", "config.yaml"))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if want := "registry: https://npm.example.com"; !strings.Contains(string(data), want) {
		t.Errorf("config file missing %q:\n%s", want, data)
	}
	if got := Get(KeyRegistry); got != "https://npm.example.com" {
		t.Errorf("Get(registry) = %q", got)
	}
}
