// Package logging builds zerolog loggers for the CLI and carries them
// through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables read by NewFromEnv.
const (
	EnvLevel  = "NOTEPAGE_LOG_LEVEL"
	EnvFormat = "NOTEPAGE_LOG_FORMAT"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	Out        io.Writer // nil means os.Stderr
}

// DefaultConfig returns warn-level console logging to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.WarnLevel,
		Format:     FormatConsole,
		TimeFormat: time.RFC3339,
	}
}

// New creates a zerolog logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = out
	if cfg.Format != FormatJSON {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
			NoColor:    true,
		}
	}

	return zerolog.New(w).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to a zerolog level.
// Accepts trace, debug, info, warn, error (case-insensitive).
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}

// ApplyEnv overrides cfg with NOTEPAGE_LOG_LEVEL and NOTEPAGE_LOG_FORMAT.
// Invalid values are ignored.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	if level := getenv(EnvLevel); level != "" {
		if l, err := ParseLevel(level); err == nil {
			cfg.Level = l
		}
	}
	switch format := getenv(EnvFormat); format {
	case FormatJSON, FormatConsole:
		cfg.Format = format
	}
	return cfg
}

// NewFromEnv creates a logger from DefaultConfig and the environment.
func NewFromEnv() zerolog.Logger {
	return New(ApplyEnv(DefaultConfig(), os.Getenv))
}

// FromContext extracts the logger from context.
// If no logger is found, returns a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithFile returns a context whose logger carries a file field.
func WithFile(ctx context.Context, path string) context.Context {
	logger := FromContext(ctx).With().Str("file", path).Logger()
	return WithContext(ctx, logger)
}
