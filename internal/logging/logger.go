// Package logging configures the bolt structured logger used by the
// simulation engine and the CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/bolt/v3"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is the output format (json or console).
	Format string

	// Output is the output destination. Defaults to stderr so that log lines
	// never interleave with the report on stdout.
	Output io.Writer
}

// DefaultConfig returns a console logger at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

// parseLevel converts a string level to bolt.Level.
func parseLevel(s string) bolt.Level {
	switch strings.ToLower(s) {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "info":
		return bolt.INFO
	case "warn", "warning":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}

// New builds a logger from cfg. Empty fields take their DefaultConfig value.
func New(cfg Config) *bolt.Logger {
	d := DefaultConfig()
	if cfg.Output == nil {
		cfg.Output = d.Output
	}
	if cfg.Level == "" {
		cfg.Level = d.Level
	}
	if cfg.Format == "" {
		cfg.Format = d.Format
	}

	var handler bolt.Handler
	if cfg.Format == "json" {
		handler = bolt.NewJSONHandler(cfg.Output)
	} else {
		handler = bolt.NewConsoleHandler(cfg.Output)
	}

	return bolt.New(handler).SetLevel(parseLevel(cfg.Level))
}

// Discard returns a logger that drops everything.
func Discard() *bolt.Logger {
	return bolt.New(bolt.NewJSONHandler(io.Discard)).SetLevel(bolt.ERROR)
}
