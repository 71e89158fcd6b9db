package main

import (
	"context"
	"errors"
	"os"

	notepage "github.com/alnah/go-notepage"
	"github.com/alnah/go-notepage/internal/assets"
	"github.com/alnah/go-notepage/internal/config"
	"github.com/alnah/go-notepage/internal/fileutil"
	"github.com/alnah/go-notepage/internal/hints"
)

// Exit codes for the notepage CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if isBrowserError(err) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadNote) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoNotes) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, notepage.ErrEmptyInput) ||
		errors.Is(err, notepage.ErrInvalidPageSize) ||
		errors.Is(err, notepage.ErrInvalidOrientation) ||
		errors.Is(err, notepage.ErrInvalidMargin) ||
		errors.Is(err, notepage.ErrInvalidIcon) ||
		errors.Is(err, notepage.ErrStyleNotFound) ||
		errors.Is(err, notepage.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputCollision) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}

// isBrowserError reports whether err comes from the headless browser.
func isBrowserError(err error) bool {
	return errors.Is(err, notepage.ErrBrowserConnect) ||
		errors.Is(err, notepage.ErrPageCreate) ||
		errors.Is(err, notepage.ErrPageLoad) ||
		errors.Is(err, notepage.ErrPDFGeneration)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, env *Environment) string {
	switch {
	case errors.Is(err, notepage.ErrBrowserConnect):
		probe := hints.Probe{Getenv: env.Getenv, FileExists: fileutil.FileExists}
		return probe.BrowserConnect()
	case errors.Is(err, notepage.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.Timeout()
	case errors.Is(err, config.ErrConfigNotFound):
		var name *configNameError
		if errors.As(err, &name) {
			return hints.ConfigNotFound(config.SearchPaths(name.name))
		}
		return hints.ConfigNotFound(nil)
	case errors.Is(err, notepage.ErrStyleNotFound):
		return hints.Styles(assets.StyleNames())
	case errors.Is(err, notepage.ErrInvalidIcon):
		return hints.Icon()
	case errors.Is(err, ErrOutputCollision):
		return hints.OutputCollision()
	case errors.Is(err, ErrCreateDir):
		return hints.OutputDir()
	}
	return ""
}
