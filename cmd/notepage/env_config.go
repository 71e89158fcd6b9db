package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-notepage/internal/config"
	"github.com/alnah/go-notepage/internal/logging"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "NOTEPAGE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string        // NOTEPAGE_CONFIG: config file name or path
	Style          string        // NOTEPAGE_STYLE: CSS style name or path
	HighlightStyle string        // NOTEPAGE_HIGHLIGHT_STYLE: chroma style
	Timeout        time.Duration // NOTEPAGE_TIMEOUT: PDF render timeout
	InputDir       string        // NOTEPAGE_INPUT_DIR: default input directory
	OutputDir      string        // NOTEPAGE_OUTPUT_DIR: default output directory
	Icon           string        // NOTEPAGE_ICON: page icon URL
	PageSize       string        // NOTEPAGE_PAGE_SIZE: letter, a4, legal
	Workers        int           // NOTEPAGE_WORKERS: parallel workers
}

// knownEnvVars lists valid NOTEPAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NOTEPAGE_CONFIG":          true,
	"NOTEPAGE_STYLE":           true,
	"NOTEPAGE_HIGHLIGHT_STYLE": true,
	"NOTEPAGE_TIMEOUT":         true,
	"NOTEPAGE_INPUT_DIR":       true,
	"NOTEPAGE_OUTPUT_DIR":      true,
	"NOTEPAGE_ICON":            true,
	"NOTEPAGE_PAGE_SIZE":       true,
	"NOTEPAGE_WORKERS":         true,
	logging.EnvLevel:           true,
	logging.EnvFormat:          true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and worker counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("NOTEPAGE_CONFIG"),
		Style:          getenv("NOTEPAGE_STYLE"),
		HighlightStyle: getenv("NOTEPAGE_HIGHLIGHT_STYLE"),
		InputDir:       getenv("NOTEPAGE_INPUT_DIR"),
		OutputDir:      getenv("NOTEPAGE_OUTPUT_DIR"),
		Icon:           getenv("NOTEPAGE_ICON"),
		PageSize:       getenv("NOTEPAGE_PAGE_SIZE"),
	}

	if timeout := getenv("NOTEPAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("NOTEPAGE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for every unrecognized NOTEPAGE_*
// variable, to catch typos like NOTEPAGE_STLYE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment variables over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.HighlightStyle != "" {
		cfg.Highlight.Style = env.HighlightStyle
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Icon != "" {
		cfg.Page.Icon = env.Icon
	}
	if env.PageSize != "" {
		cfg.PDF.Size = env.PageSize
	}
}
