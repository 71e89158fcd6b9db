package notepage

import (
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/net/html"

	"github.com/alnah/go-notepage/internal/dom"
)

// Attributes and classes of copy triggers.
const (
	// ClipboardTriggerClass marks a control that copies its target.
	ClipboardTriggerClass = "clipboard-trigger"

	// ClipboardTargetAttr holds the selector ("#id") of the element to copy.
	ClipboardTargetAttr = "data-clipboard-target"

	// DefaultCopyLabel is the text of copy triggers.
	DefaultCopyLabel = "Copy"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

var _ Clipboard = SystemClipboard{}

// WriteAll copies text to the system clipboard.
// Returns ErrClipboardUnsupported when no clipboard utility is available.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// CodeText returns the text a copy trigger puts on the clipboard for n:
// its text content without line number gutters.
func CodeText(n *html.Node) string {
	var b strings.Builder
	dom.Walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && dom.HasClass(c, lineNumClass) {
			return false
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}
