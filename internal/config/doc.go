// Package config manages user-level settings stored at ~/.stylegen/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the npm registry URL and the package manager used for installation.
package config
