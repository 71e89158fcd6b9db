// Package config loads and validates the notepage YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-notepage/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength     = 300
	MaxURLLength       = 2048
	MaxMimeTypeLength  = 100
	MaxStyleLength     = 100
	MaxCopyLabelLength = 50
	MaxPathLength      = 4096
)

// Margin bounds in inches, matching the PDF renderer.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// Config holds all configuration for note page generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Page      PageConfig      `yaml:"page"`
	Highlight HighlightConfig `yaml:"highlight"`
	CSS       CSSConfig       `yaml:"css"`
	Assets    AssetsConfig    `yaml:"assets"`
	PDF       PDFConfig       `yaml:"pdf"`
	Log       LogConfig       `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// PageConfig defines document metadata applied to every note.
type PageConfig struct {
	Title    string `yaml:"title"`    // Empty = first h1, then file name
	Icon     string `yaml:"icon"`     // Favicon URL
	IconType string `yaml:"iconType"` // Empty = guessed from the icon extension
}

// HighlightConfig defines code block options.
type HighlightConfig struct {
	Style       string `yaml:"style"`       // chroma style name
	LineNumbers bool   `yaml:"lineNumbers"` // default true
	CopyLabel   string `yaml:"copyLabel"`   // copy button text
}

// CSSConfig defines styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Name of an embedded style, a file path, or empty
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded assets
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// LogConfig defines CLI logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Highlight: HighlightConfig{
			Style:       "github",
			LineNumbers: true,
			CopyLabel:   "Copy",
		},
		CSS: CSSConfig{Style: "default"},
		PDF: PDFConfig{
			Size:        "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
		Log: LogConfig{Level: "warn", Format: "console"},
	}
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"page.title", c.Page.Title, MaxTitleLength},
		{"page.icon", c.Page.Icon, MaxURLLength},
		{"page.iconType", c.Page.IconType, MaxMimeTypeLength},
		{"highlight.style", c.Highlight.Style, MaxStyleLength},
		{"highlight.copyLabel", c.Highlight.CopyLabel, MaxCopyLabelLength},
		{"css.style", c.CSS.Style, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Page.IconType != "" && !strings.Contains(c.Page.IconType, "/") {
		return fmt.Errorf("%w: page.iconType %q is not a media type", ErrInvalidValue, c.Page.IconType)
	}

	switch strings.ToLower(c.PDF.Size) {
	case "", "letter", "a4", "legal":
	default:
		return fmt.Errorf("%w: pdf.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.Size)
	}
	switch strings.ToLower(c.PDF.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("%w: pdf.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.PDF.Orientation)
	}
	if c.PDF.Margin != 0 && (c.PDF.Margin < MinMargin || c.PDF.Margin > MaxMargin) {
		return fmt.Errorf("%w: pdf.margin %.2f (must be between %.2f and %.2f)", ErrInvalidValue, c.PDF.Margin, MinMargin, MaxMargin)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Dump renders the configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	return yamlutil.Encode(c)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files tried for a config name, in order:
// <name>.yaml and <name>.yml in the current directory, then in
// <user config dir>/notepage/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "notepage", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
