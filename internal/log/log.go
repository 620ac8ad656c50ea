// Package log wraps zerolog with the process-wide logger used by every
// component. Diagnostics go to stderr so they never mix with generated
// output or prompts.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", ...), defaults to warn
	Output io.Writer // optional writer, defaults to a console writer on stderr
}

var (
	mu   sync.Mutex
	base = zerolog.New(io.Discard)
	set  bool
)

// Configure installs the global logger. Later calls replace the earlier
// configuration, which lets the CLI apply the level from flags after config
// has been loaded.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	level := zerolog.WarnLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	base = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	set = true
}

func logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !set {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.WarnLevel).With().Timestamp().Logger()
		set = true
	}
	return base
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str("component", component).Logger()
}
