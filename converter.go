package notepage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-notepage/internal/assets"
	"github.com/alnah/go-notepage/internal/dom"
	"github.com/alnah/go-notepage/internal/fileutil"
	"github.com/alnah/go-notepage/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.NotePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.StyleInjector        = pipeline.HeadStyles{}
)

// smoothScrollCSS makes anchor jumps the browser performs itself smooth too.
const smoothScrollCSS = "html { scroll-behavior: smooth; }\n"

// Converter renders notes into enhanced HTML pages, and optionally PDF.
// Create with NewConverter, use Convert for each note, and Close when done.
// A Converter is not safe for concurrent use; use a ConverterPool.
type Converter struct {
	cfg           converterConfig
	logger        zerolog.Logger
	styles        assets.StyleSource
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	styleInjector pipeline.StyleInjector
	enhancer      *Enhancer
	themeCSS      string
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Returns an error if the asset path or the style cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:        defaultTimeout,
			highlightStyle: DefaultHighlightStyle,
			lineNumbers:    true,
			copyLabel:      DefaultCopyLabel,
		},
		logger:        zerolog.Nop(),
		styles:        assets.Builtin{},
		preprocessor:  &pipeline.NotePreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		styleInjector: pipeline.HeadStyles{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		catalog, err := assets.Open(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.logger.Debug().Strs("styles", catalog.Names()).Msg("custom styles loaded")
		c.styles = catalog
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	highlighter := NewChromaHighlighter(c.cfg.highlightStyle)
	themeCSS, err := highlighter.CSS()
	if err != nil {
		return nil, err
	}
	c.themeCSS = themeCSS

	if c.enhancer == nil {
		c.enhancer = NewEnhancer(
			WithHighlighter(highlighter),
			WithLineNumbering(c.cfg.lineNumbers),
			WithCopyLabel(c.cfg.copyLabel),
			WithEnhancerLogger(c.logger),
		)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.logger)
	}

	c.logger.Debug().
		Str("highlight_style", highlighter.StyleName()).
		Bool("line_numbers", c.cfg.lineNumbers).
		Msg("converter ready")

	return c, nil
}

// Convert renders a note. Markdown input goes through preprocessing and
// Goldmark first; HTML input is enhanced as is. The page is titled, code
// blocks are wrapped and highlighted, math is typeset, anchors scroll
// smoothly and the stylesheets are injected. A PDF is rendered when
// input.PDF is set.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	htmlContent := input.HTML
	if input.Markdown != "" {
		mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		htmlContent, err = c.htmlConverter.ToHTML(ctx, mdContent)
		if err != nil {
			if errors.Is(err, pipeline.ErrHTMLConversion) {
				err = fmt.Errorf("%w: %v", ErrHTMLConversion, err)
			}
			return nil, fmt.Errorf("converting to HTML: %w", err)
		}

		// Math reaches this point as placeholders; done after Goldmark to
		// avoid needing html.WithUnsafe().
		htmlContent = pipeline.ExpandMathPlaceholders(htmlContent)
	}

	doc, err := ParseDocumentString(htmlContent)
	if err != nil {
		return nil, err
	}
	doc.SetLogger(c.logger)

	if err := pipeline.RewriteRelativePaths(doc.Root(), input.SourceDir); err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}

	title := resolveTitle(input.Title, doc)
	c.enhancer.Enhance(doc, Page{Title: title, Icon: input.Icon})

	head := doc.ensureHead()
	markGenerated(head)

	// Base style first, user CSS last so it can override.
	if err := c.styleInjector.InjectStyles(ctx, head,
		c.cfg.resolvedStyle, c.themeCSS+smoothScrollCSS, input.CSS); err != nil {
		return nil, fmt.Errorf("injecting styles: %w", err)
	}

	var buf strings.Builder
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	htmlContent = buf.String()

	res := &Result{
		HTML:  []byte(htmlContent),
		Title: title,
	}

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Without a style input the built-in default style is used.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.styles.Style(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidName) {
			return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" && input.HTML == "" {
		return ErrEmptyInput
	}
	if input.Markdown != "" && input.HTML != "" {
		return ErrAmbiguousInput
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Icon.Validate()
}

// resolveTitle picks the page title: the explicit title, then the existing
// title element of an HTML page, then the text of the first h1, then
// DefaultTitle.
func resolveTitle(explicit string, doc *Document) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Title()); t != "" {
		return t
	}
	h1 := dom.FindFirst(doc.Root(), func(n *html.Node) bool { return isHTMLElement(n, atom.H1) })
	if h1 != nil {
		if t := strings.Join(strings.Fields(dom.TextContent(h1)), " "); t != "" {
			return t
		}
	}
	return DefaultTitle
}
