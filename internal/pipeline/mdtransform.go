package pipeline

import (
	"context"
	"encoding/hex"
	"html"
	"regexp"
	"strings"
)

// Math placeholders use Unicode Private Use Area characters. The TeX source
// between them is hex-encoded so Goldmark cannot apply escapes or emphasis
// to it. ExpandMathPlaceholders turns them into elements after conversion.
const (
	InlineMathPlaceholder  = "\uE010" // U+E010: inline math start
	DisplayMathPlaceholder = "\uE011" // U+E011: display math start
	MathEndPlaceholder     = "\uE012" // U+E012: math end

	codeSpanStart = "\uE020"
	codeSpanFill  = "\uE021"
	codeSpanEnd   = "\uE022"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Fence opener or closer: ``` or ~~~ with optional info string
	fenceLine = regexp.MustCompile("^\\s{0,3}(`{3,}|~{3,})")

	// Indented code line: four spaces or a tab after at most three spaces.
	indentedLine = regexp.MustCompile(`^ {0,3}(\t| {4})`)

	// List item opener: bullet or ordered marker followed by a space.
	listItemLine = regexp.MustCompile(`^ {0,3}([-*+]|\d{1,9}[.)])(\s|$)`)

	// Inline code spans are left untouched.
	codeSpan = regexp.MustCompile("`+[^`]*`+")

	displayDollar  = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	displayBracket = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	inlineParen    = regexp.MustCompile(`\\\((.+?)\\\)`)
	// $x$ with no space just inside the delimiters, so "$5 and $6" is not math.
	inlineDollar = regexp.MustCompile(`\$([^\s$](?:[^$\n]*?[^\s$\\])?)\$`)

	mathPlaceholder = regexp.MustCompile("([\uE010\uE011])([0-9a-f]*)\uE012")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// NotePreprocessor applies transformations before CommonMark conversion.
type NotePreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *NotePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = protectMath(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// protectMath replaces math spans outside code with placeholders.
// Fenced code blocks, indented code blocks and inline code spans are never
// touched. An indented line is code when it follows a blank line (or starts
// the document) outside a list, or continues an indented block; otherwise it
// belongs to a paragraph or list item.
func protectMath(content string) string {
	lines := strings.SplitAfter(content, "\n")

	var out strings.Builder
	var prose strings.Builder
	fence := ""
	indented, inList := false, false
	prevBlank := true

	flush := func() {
		out.WriteString(protectProse(prose.String()))
		prose.Reset()
	}
	code := func(line string) {
		flush()
		out.WriteString(line)
	}

	for _, line := range lines {
		if fence != "" {
			out.WriteString(line)
			if m := fenceLine.FindStringSubmatch(line); m != nil && m[1][0] == fence[0] && len(m[1]) >= len(fence) {
				fence = ""
				prevBlank = true
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			if indented {
				out.WriteString(line)
			} else {
				prose.WriteString(line)
			}
			prevBlank = true
			continue
		}

		switch {
		case indentedLine.MatchString(line) && (indented || (prevBlank && !inList)):
			indented = true
			code(line)
		case indentedLine.MatchString(line):
			prose.WriteString(line)
		default:
			indented = false
			if m := fenceLine.FindStringSubmatch(line); m != nil {
				fence = m[1]
				code(line)
				break
			}
			if listItemLine.MatchString(line) {
				inList = true
			} else if prevBlank {
				inList = false
			}
			prose.WriteString(line)
		}
		prevBlank = false
	}
	flush()

	return out.String()
}

// protectProse handles a run of non-fenced Markdown.
func protectProse(s string) string {
	if !strings.ContainsAny(s, `$\`) {
		return s
	}

	// Stash code spans so their content is not matched as math.
	var spans []string
	s = codeSpan.ReplaceAllStringFunc(s, func(m string) string {
		spans = append(spans, m)
		return codeSpanStart + strings.Repeat(codeSpanFill, len(spans)-1) + codeSpanEnd
	})

	s = displayDollar.ReplaceAllStringFunc(s, placeholder(displayDollar, DisplayMathPlaceholder))
	s = displayBracket.ReplaceAllStringFunc(s, placeholder(displayBracket, DisplayMathPlaceholder))
	s = inlineParen.ReplaceAllStringFunc(s, placeholder(inlineParen, InlineMathPlaceholder))
	s = inlineDollar.ReplaceAllStringFunc(s, placeholder(inlineDollar, InlineMathPlaceholder))

	for i := len(spans) - 1; i >= 0; i-- {
		key := codeSpanStart + strings.Repeat(codeSpanFill, i) + codeSpanEnd
		s = strings.Replace(s, key, spans[i], 1)
	}
	return s
}

func placeholder(re *regexp.Regexp, kind string) func(string) string {
	return func(m string) string {
		tex := re.FindStringSubmatch(m)[1]
		return kind + hex.EncodeToString([]byte(strings.TrimSpace(tex))) + MathEndPlaceholder
	}
}

// ExpandMathPlaceholders converts math placeholders into elements with the
// math class. Inline math becomes <span class="math">\(...\)</span>, display
// math <span class="math math-display">\[...\]</span>. A span is used for
// both so display math inside a paragraph stays valid HTML.
func ExpandMathPlaceholders(content string) string {
	if !strings.ContainsAny(content, InlineMathPlaceholder+DisplayMathPlaceholder) {
		return content
	}
	return mathPlaceholder.ReplaceAllStringFunc(content, func(m string) string {
		parts := mathPlaceholder.FindStringSubmatch(m)
		raw, err := hex.DecodeString(parts[2])
		if err != nil {
			return m
		}
		tex := html.EscapeString(string(raw))
		if parts[1] == DisplayMathPlaceholder {
			return `<span class="math math-display">\[` + tex + `\]</span>`
		}
		return `<span class="math">\(` + tex + `\)</span>`
	})
}
