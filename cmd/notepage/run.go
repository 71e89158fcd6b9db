package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	notepage "github.com/alnah/go-notepage"
	"github.com/alnah/go-notepage/internal/config"
	"github.com/alnah/go-notepage/internal/fileutil"
	"github.com/alnah/go-notepage/internal/logging"
)

// ErrInvalidTimeout is returned for a malformed or non-positive --timeout.
var ErrInvalidTimeout = errors.New("invalid timeout")

// configNameError records the config name that could not be loaded, so the
// CLI can list where it was searched.
type configNameError struct {
	name string
	err  error
}

func (e *configNameError) Error() string {
	return fmt.Sprintf("loading config %q: %v", e.name, e.err)
}

func (e *configNameError) Unwrap() error { return e.err }

// batchError reports failed conversions. Each failure was already printed.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() error { return e.first }

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *cliFlags, env *Environment, newPool poolFactory) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	// Load configuration: CLI flags > env vars > config file > defaults
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.printConfig {
		out, err := cfg.Dump()
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	logger := newLogger(flags, cfg, env)
	ctx = logging.WithContext(ctx, logger)

	params, err := buildParams(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir, params.pdf)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoNotes, inputPath)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	size := min(notepage.ResolvePoolSize(workers), len(files))

	pool := newPool(size, converterOptions(cfg, timeout, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing converters")
		}
	}()

	// Create the first converter up front so style and asset errors
	// fail the run once instead of every file.
	conv, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	pool.Release(conv)

	logger.Debug().
		Str("input", inputPath).
		Int("files", len(files)).
		Int("workers", size).
		Bool("pdf", params.pdf).
		Msg("starting conversion")

	results := convertBatch(ctx, pool, files, params)

	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return &batchError{failed: failed, first: firstError(results)}
	}
	return nil
}

// loadConfig loads the config named by the flag, then NOTEPAGE_CONFIG.
// Without either the defaults are used.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if !fileutil.IsFilePath(name) {
			return nil, &configNameError{name: name, err: err}
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	// Page flags
	if flags.page.title != "" {
		cfg.Page.Title = flags.page.title
	}
	if flags.page.icon != "" {
		cfg.Page.Icon = flags.page.icon
	}
	if flags.page.iconType != "" {
		cfg.Page.IconType = flags.page.iconType
	}

	// Highlight flags
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
	}
	if flags.highlight.noLineNumbers {
		cfg.Highlight.LineNumbers = false
	}
	if flags.highlight.copyLabel != "" {
		cfg.Highlight.CopyLabel = flags.highlight.copyLabel
	}

	// PDF flags
	if flags.pdf.enabled {
		cfg.PDF.Enabled = true
	}
	if flags.pdf.size != "" {
		cfg.PDF.Size = flags.pdf.size
	}
	if flags.pdf.orientation != "" {
		cfg.PDF.Orientation = flags.pdf.orientation
	}
	if flags.pdf.margin != 0 {
		cfg.PDF.Margin = flags.pdf.margin
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Log flags
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}
}

// buildParams builds the per-file conversion parameters from config.
func buildParams(cfg *config.Config) (*conversionParams, error) {
	params := &conversionParams{
		title: cfg.Page.Title,
		pdf:   cfg.PDF.Enabled,
	}

	if cfg.Page.Icon != "" {
		params.icon = &notepage.Icon{URL: cfg.Page.Icon, Type: cfg.Page.IconType}
		if err := params.icon.Validate(); err != nil {
			return nil, err
		}
	}

	if params.pdf {
		page := notepage.DefaultPageSettings()
		if cfg.PDF.Size != "" {
			page.Size = cfg.PDF.Size
		}
		if cfg.PDF.Orientation != "" {
			page.Orientation = cfg.PDF.Orientation
		}
		if cfg.PDF.Margin != 0 {
			page.Margin = cfg.PDF.Margin
		}
		if err := page.Validate(); err != nil {
			return nil, err
		}
		params.page = page
	}

	return params, nil
}

// converterOptions builds the options of every converter in the pool.
func converterOptions(cfg *config.Config, timeout time.Duration, logger zerolog.Logger) []notepage.Option {
	opts := []notepage.Option{
		notepage.WithStyle(cfg.CSS.Style),
		notepage.WithHighlightStyle(cfg.Highlight.Style),
		notepage.WithLineNumbers(cfg.Highlight.LineNumbers),
		notepage.WithCopyLabelText(cfg.Highlight.CopyLabel),
		notepage.WithAssetPath(cfg.Assets.BasePath),
		notepage.WithLogger(logger),
	}
	if timeout > 0 {
		opts = append(opts, notepage.WithTimeout(timeout))
	}
	return opts
}

// resolveTimeout parses --timeout, falling back to NOTEPAGE_TIMEOUT.
// Zero means the converter default.
func resolveTimeout(flagTimeout string, envCfg *envConfig) (time.Duration, error) {
	if flagTimeout == "" {
		return envCfg.Timeout, nil
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, flagTimeout)
	}
	return d, nil
}

// newLogger builds the CLI logger: flags > env vars > config file > defaults.
func newLogger(flags *cliFlags, cfg *config.Config, env *Environment) zerolog.Logger {
	lc := logging.DefaultConfig()
	if level, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		lc.Level = level
	}
	if cfg.Log.Format != "" {
		lc.Format = cfg.Log.Format
	}
	lc = logging.ApplyEnv(lc, env.Getenv)

	if flags.common.verbose {
		lc.Level = zerolog.DebugLevel
	}
	if flags.common.quiet {
		lc.Level = zerolog.ErrorLevel
	}
	if flags.common.logFormat != "" {
		lc.Format = flags.common.logFormat
	}
	lc.Out = env.Stderr
	return logging.New(lc)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// firstError returns the first failure of a batch.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
