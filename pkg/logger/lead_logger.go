// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config for logger construction.
type Config struct {
	Level   string // zerolog level name; unknown values fall back to info
	Service string
	Console bool // human-readable console output instead of JSON
	Output  io.Writer
}

// New creates a configured logger. JSON output by default; console output
// is for development runs.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Service == "" {
		cfg.Service = "leadfilter"
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()
}
