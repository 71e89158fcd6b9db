package notepage

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-notepage/internal/dom"
)

// Generator is the content of the generator meta element written into every
// converted page.
const Generator = "notepage"

// markGenerated sets <meta name="generator" content="notepage"> as the first
// element of head, replacing any generator meta already present.
func markGenerated(head *html.Node) {
	meta := dom.FindFirst(head, isGeneratorMeta)
	if meta == nil {
		meta = dom.NewElement("meta", html.Attribute{Key: "name", Val: "generator"})
	} else {
		dom.Detach(meta)
	}
	dom.SetAttr(meta, "content", Generator)
	head.InsertBefore(meta, head.FirstChild)
}

func isGeneratorMeta(n *html.Node) bool {
	if !isHTMLElement(n, atom.Meta) {
		return false
	}
	name, _ := dom.Attr(n, "name")
	return strings.EqualFold(name, "generator")
}

// IsGenerated reports whether the page read from r was written by a
// Converter. Only the head is scanned; read errors count as not generated.
func IsGenerated(r io.Reader) bool {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.EndTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.Head {
				return false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case atom.Body:
				return false
			case atom.Meta:
				if hasAttr && generatorAttrs(z) {
					return true
				}
			}
		}
	}
}

func generatorAttrs(z *html.Tokenizer) bool {
	var isGenerator, ours bool
	for {
		key, val, more := z.TagAttr()
		switch string(key) {
		case "name":
			isGenerator = strings.EqualFold(string(val), "generator")
		case "content":
			ours = strings.TrimSpace(string(val)) == Generator
		}
		if !more {
			return isGenerator && ours
		}
	}
}
