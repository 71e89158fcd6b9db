package notepage

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input must contain Markdown or HTML content")
	ErrAmbiguousInput = errors.New("input must set either Markdown or HTML, not both")
	ErrParseHTML      = errors.New("HTML parsing failed")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrRender         = errors.New("HTML rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Icon validation errors.
	ErrInvalidIcon = errors.New("invalid icon")

	// Clipboard errors.
	ErrClipboardUnsupported = errors.New("system clipboard unavailable")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
