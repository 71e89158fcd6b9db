package notepage

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string // name, file path or CSS content
	resolvedStyle  string // CSS content after resolution
	highlightStyle string
	lineNumbers    bool
	copyLabel      string
	assetPath      string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page load timeout for PDF rendering.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("notepage: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the base stylesheet: a built-in style name ("default",
// "minimal"), a path to a CSS file, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithHighlightStyle sets the chroma style of highlighted code.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithLineNumbers enables or disables line numbers on code blocks.
func WithLineNumbers(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.lineNumbers = enabled
	}
}

// WithCopyLabelText sets the text of the copy triggers.
func WithCopyLabelText(label string) Option {
	return func(c *Converter) {
		c.cfg.copyLabel = label
	}
}

// WithAssetPath sets a directory of custom styles (styles/<name>.css),
// taking precedence over the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithLogger sets the logger of the converter and its default enhancer.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithEnhancer replaces the default enhancer. Highlight style, line number
// and copy label options then only affect the injected stylesheet.
func WithEnhancer(e *Enhancer) Option {
	return func(c *Converter) {
		c.enhancer = e
	}
}
