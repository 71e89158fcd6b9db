package notepage

import (
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// DefaultTitle is the page title when neither the input nor the content
// provides one.
const DefaultTitle = "Note"

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	default:
		return false
	}
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	default:
		return false
	}
}

// Icon is a page favicon.
type Icon struct {
	URL  string // address of the icon (required)
	Type string // media type; guessed from URL when empty
}

// Validate checks that the icon has a usable address and media type.
// Returns nil if i is nil (nil means no icon).
func (i *Icon) Validate() error {
	if i == nil {
		return nil
	}
	if strings.TrimSpace(i.URL) == "" {
		return fmt.Errorf("%w: empty URL", ErrInvalidIcon)
	}
	if strings.ContainsAny(i.URL, " \t\r\n") {
		return fmt.Errorf("%w: URL %q contains whitespace", ErrInvalidIcon, i.URL)
	}
	if i.Type != "" && !strings.Contains(i.Type, "/") {
		return fmt.Errorf("%w: type %q is not a media type", ErrInvalidIcon, i.Type)
	}
	return nil
}

// MediaType returns Type, or the type guessed from URL when Type is empty.
func (i *Icon) MediaType() string {
	if i.Type != "" {
		return i.Type
	}
	return IconTypeFor(i.URL)
}

// IconTypeFor guesses the media type of an icon from its address.
// Returns "" when the type cannot be guessed.
func IconTypeFor(iconURL string) string {
	if rest, ok := strings.CutPrefix(iconURL, "data:"); ok {
		end := strings.IndexAny(rest, ";,")
		if end < 0 {
			return ""
		}
		return rest[:end]
	}

	p := iconURL
	if u, err := url.Parse(iconURL); err == nil {
		p = u.Path
	}

	switch ext := strings.ToLower(path.Ext(p)); ext {
	case "":
		return ""
	case ".ico":
		return "image/x-icon"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	default:
		t := mime.TypeByExtension(ext)
		if mediaType, _, ok := strings.Cut(t, ";"); ok {
			return mediaType
		}
		return t
	}
}

// Page holds the per-page settings applied by Enhance.
type Page struct {
	Title string // document title; unchanged when empty
	Icon  *Icon  // favicon; unchanged when nil
}

// Input contains conversion parameters.
// Exactly one of Markdown and HTML must be set.
type Input struct {
	Markdown  string        // Markdown note content
	HTML      string        // rendered HTML page or fragment
	Title     string        // page title (optional, defaults to the first h1)
	Icon      *Icon         // favicon (optional)
	CSS       string        // custom CSS appended after the built-in styles (optional)
	SourceDir string        // directory of the note, for relative image paths (optional)
	PDF       bool          // also render a PDF
	Page      *PageSettings // PDF page settings (optional, nil = defaults)
}

// Result holds the output of a conversion.
type Result struct {
	HTML  []byte
	PDF   []byte // nil unless Input.PDF was set
	Title string // resolved page title
}
