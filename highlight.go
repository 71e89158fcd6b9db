package notepage

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"

	"github.com/alnah/go-notepage/internal/dom"
)

// Class names written by the highlighting passes.
const (
	// HighlightedClass marks an element whose content was highlighted.
	HighlightedClass = "hljs"

	// LineNumberedClass marks an element whose lines were numbered.
	LineNumberedClass = "ln-numbered"

	// NoHighlightClass opts a block out of highlighting.
	NoHighlightClass = "nohighlight"

	chromaClass   = "chroma"
	lineClass     = "ln-line"
	lineNumClass  = "ln-num"
	lineCodeClass = "ln-code"

	// plainTextLanguage is recorded when no lexer matches the block.
	plainTextLanguage = "plaintext"
)

// DefaultHighlightStyle is the chroma style used for the theme stylesheet.
const DefaultHighlightStyle = "github"

// Highlighter highlights code elements in place.
type Highlighter interface {
	// HighlightBlock replaces the text of a code element with highlighted
	// markup and marks it with HighlightedClass.
	HighlightBlock(code *html.Node) error

	// LineNumbersBlock splits a highlighted element into numbered lines.
	LineNumbersBlock(el *html.Node) error
}

// ChromaHighlighter highlights code with chroma. Tokens become spans
// carrying chroma's short class names, styled by the sheet from CSS.
type ChromaHighlighter struct {
	style *chroma.Style
}

var _ Highlighter = (*ChromaHighlighter)(nil)

// NewChromaHighlighter creates a highlighter for the named chroma style.
// Unknown names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{style: styles.Get(styleName)}
}

// StyleName returns the name of the resolved chroma style.
func (h *ChromaHighlighter) StyleName() string {
	return h.style.Name
}

// CSS returns the stylesheet for highlighted blocks.
func (h *ChromaHighlighter) CSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("writing %s highlight CSS: %w", h.style.Name, err)
	}
	return buf.String(), nil
}

// HighlightBlock highlights code in place. The language comes from a
// language-* or lang-* class on the element or its parent, then from content
// analysis. Elements already highlighted or marked nohighlight are skipped.
func (h *ChromaHighlighter) HighlightBlock(code *html.Node) error {
	if code == nil || dom.HasClass(code, HighlightedClass) || optedOut(code) {
		return nil
	}

	src := dom.TextContent(code)
	lexer, lang := lexerFor(code, src)

	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return fmt.Errorf("tokenising %s block: %w", lang, err)
	}

	dom.RemoveChildren(code)
	for tok := it(); tok != chroma.EOF; tok = it() {
		cls := tokenClass(tok.Type)
		if cls == "" {
			code.AppendChild(dom.NewText(tok.Value))
			continue
		}
		span := dom.NewElement("span", html.Attribute{Key: "class", Val: cls})
		span.AppendChild(dom.NewText(tok.Value))
		code.AppendChild(span)
	}

	dom.AddClass(code, HighlightedClass, chromaClass, "language-"+lang)
	return nil
}

// LineNumbersBlock wraps each line of el in a numbered span:
//
//	<span class="ln-line"><span class="ln-num" data-line-number="1"></span><span class="ln-code">...</span></span>
//
// Lines stay separated by newlines so the block renders unchanged without
// the stylesheet. Token spans crossing a line break are split in two.
func (h *ChromaHighlighter) LineNumbersBlock(el *html.Node) error {
	if el == nil || dom.HasClass(el, LineNumberedClass) {
		return nil
	}

	lines := splitLines(el)
	dom.RemoveChildren(el)
	for i, line := range lines {
		if i > 0 {
			el.AppendChild(dom.NewText("\n"))
		}
		num := dom.NewElement("span",
			html.Attribute{Key: "class", Val: lineNumClass},
			html.Attribute{Key: "data-line-number", Val: strconv.Itoa(i + 1)},
		)
		code := dom.NewElement("span", html.Attribute{Key: "class", Val: lineCodeClass})
		for _, n := range line {
			code.AppendChild(n)
		}
		wrapper := dom.NewElement("span", html.Attribute{Key: "class", Val: lineClass})
		wrapper.AppendChild(num)
		wrapper.AppendChild(code)
		el.AppendChild(wrapper)
	}

	dom.AddClass(el, LineNumberedClass)
	return nil
}

// splitLines cuts the children of el into lines of detached nodes. Element
// children are flattened to their text, keeping their own attributes.
// A trailing newline does not start an extra line.
func splitLines(el *html.Node) [][]*html.Node {
	var lines [][]*html.Node
	var cur []*html.Node

	for c := el.FirstChild; c != nil; c = c.NextSibling {
		parts := strings.Split(dom.TextContent(c), "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			if part == "" {
				continue
			}
			cur = append(cur, cloneWithText(c, part))
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// cloneWithText copies n without its children and gives it the text s.
// Text nodes become new text nodes.
func cloneWithText(n *html.Node, s string) *html.Node {
	if n.Type != html.ElementNode {
		return dom.NewText(s)
	}
	clone := &html.Node{
		Type:      html.ElementNode,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	clone.AppendChild(dom.NewText(s))
	return clone
}

// optedOut reports whether code or its pre parent carries nohighlight.
func optedOut(code *html.Node) bool {
	if dom.HasClass(code, NoHighlightClass) {
		return true
	}
	return code.Parent != nil && dom.HasClass(code.Parent, NoHighlightClass)
}

// lexerFor picks the lexer for a code element and the language name to
// record on it.
func lexerFor(code *html.Node, src string) (chroma.Lexer, string) {
	if lang := declaredLanguage(code); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l, lang
		}
		return lexers.Fallback, lang
	}
	if l := lexers.Analyse(src); l != nil {
		return l, languageName(l)
	}
	return lexers.Fallback, plainTextLanguage
}

// declaredLanguage reads a language-* or lang-* class from code, then from
// its parent.
func declaredLanguage(code *html.Node) string {
	for _, n := range []*html.Node{code, code.Parent} {
		for _, cls := range dom.Classes(n) {
			for _, prefix := range []string{"language-", "lang-"} {
				if lang, ok := strings.CutPrefix(cls, prefix); ok && lang != "" {
					return strings.ToLower(lang)
				}
			}
		}
	}
	return ""
}

func languageName(l chroma.Lexer) string {
	return strings.ReplaceAll(strings.ToLower(l.Config().Name), " ", "-")
}

// tokenClass maps a token type to chroma's short class name, walking up to
// the parent category when the type has none of its own.
func tokenClass(t chroma.TokenType) string {
	for t != 0 {
		if cls, ok := chroma.StandardTypes[t]; ok {
			return cls
		}
		t = t.Parent()
	}
	return chroma.StandardTypes[t]
}
