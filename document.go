package notepage

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-notepage/internal/dom"
)

// Document is a parsed HTML page that enhancers mutate in place.
//
// Besides the node tree, a Document carries the click listeners registered
// on its elements, so in-page behavior (anchor scrolling, copy buttons) can
// be exercised with Click. A Document is not safe for concurrent use.
type Document struct {
	root      *html.Node
	listeners map[*html.Node]map[string][]Listener
	bound     map[binding]struct{}
	logger    zerolog.Logger
}

// binding identifies a behavior attached once to a node.
type binding struct {
	node *html.Node
	name string
}

// ParseDocument parses an HTML page from r.
// Fragments are accepted: the parser supplies the html, head and body elements.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseHTML, err)
	}
	return NewDocument(root), nil
}

// ParseDocumentString parses an HTML page from a string.
func ParseDocumentString(s string) (*Document, error) {
	return ParseDocument(strings.NewReader(s))
}

// NewDocument wraps an existing node tree.
func NewDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]Listener),
		bound:     make(map[binding]struct{}),
		logger:    zerolog.Nop(),
	}
}

// SetLogger sets the logger used to report recovered listener panics.
func (d *Document) SetLogger(logger zerolog.Logger) {
	d.logger = logger
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Head returns the head element, or nil if the tree has none.
func (d *Document) Head() *html.Node {
	return dom.FindFirst(d.root, func(n *html.Node) bool { return isHTMLElement(n, atom.Head) })
}

// Body returns the body element, or nil if the tree has none.
func (d *Document) Body() *html.Node {
	return dom.FindFirst(d.root, func(n *html.Node) bool { return isHTMLElement(n, atom.Body) })
}

// Title returns the text of the first title element, or "" if there is none.
func (d *Document) Title() string {
	t := d.titleElement()
	if t == nil {
		return ""
	}
	return dom.TextContent(t)
}

// ElementByID returns the first element with the given id, or nil.
func (d *Document) ElementByID(id string) *html.Node {
	return dom.ByID(d.root, id)
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// String renders the document as HTML. Rendering errors yield "".
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func (d *Document) titleElement() *html.Node {
	return dom.FindFirst(d.root, func(n *html.Node) bool { return isHTMLElement(n, atom.Title) })
}

// ensureHead returns the head element, creating it if the tree lacks one.
func (d *Document) ensureHead() *html.Node {
	if head := d.Head(); head != nil {
		return head
	}
	head := dom.NewElement("head")
	parent := dom.FindFirst(d.root, func(n *html.Node) bool { return isHTMLElement(n, atom.Html) })
	if parent == nil {
		parent = d.root
	}
	parent.InsertBefore(head, parent.FirstChild)
	return head
}

// fragmentTarget resolves an in-page link ("#id") to its target element.
// The raw fragment is tried first, then its percent-decoded form.
func (d *Document) fragmentTarget(href string) *html.Node {
	frag, ok := strings.CutPrefix(href, "#")
	if !ok || frag == "" {
		return nil
	}
	if n := d.ElementByID(frag); n != nil {
		return n
	}
	decoded, err := url.PathUnescape(frag)
	if err != nil || decoded == frag {
		return nil
	}
	return d.ElementByID(decoded)
}

// bindOnce records that the named behavior is attached to n.
// It returns false if it already was.
func (d *Document) bindOnce(n *html.Node, name string) bool {
	key := binding{node: n, name: name}
	if _, ok := d.bound[key]; ok {
		return false
	}
	d.bound[key] = struct{}{}
	return true
}

// isHTMLElement matches elements in the HTML namespace, so an SVG <title>
// is never taken for the page title.
func isHTMLElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.Namespace == "" && n.DataAtom == a
}
