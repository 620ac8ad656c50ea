package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/stylegen-labs/stylegen/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyRegistry       = "registry"
	KeyPackageManager = "package_manager"
	KeyConcurrency    = "concurrency"
	KeyLogLevel       = "log_level"
	KeyHTTPTimeout    = "http_timeout"
)

// Settings is the typed view of the configuration consumed by the generator.
type Settings struct {
	Registry       string
	PackageManager string
	Concurrency    int
	LogLevel       string
	HTTPTimeout    time.Duration
}

// Dir returns the path to the config directory (~/.stylegen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.stylegen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRegistry, branding.DefaultRegistry())
	viper.SetDefault(KeyPackageManager, "npm")
	viper.SetDefault(KeyConcurrency, 4)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyHTTPTimeout, "30s")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the typed settings. Load must have been called first.
func Current() Settings {
	s := Settings{
		Registry:       viper.GetString(KeyRegistry),
		PackageManager: viper.GetString(KeyPackageManager),
		Concurrency:    viper.GetInt(KeyConcurrency),
		LogLevel:       viper.GetString(KeyLogLevel),
		HTTPTimeout:    viper.GetDuration(KeyHTTPTimeout),
	}
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}
	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = 30 * time.Second
	}
	return s
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
