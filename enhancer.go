package notepage

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-notepage/internal/dom"
)

// Code block conventions.
const (
	// CodeBlockClass marks the container wrapping a pre element and its
	// copy trigger.
	CodeBlockClass = "code-block"

	// SmoothScrollAttr marks in-page anchors that scroll smoothly.
	SmoothScrollAttr = "data-smooth-scroll"

	codeBlockIDPrefix = "code-block-"
	triggerClasses    = "btn btn-clipboard " + ClipboardTriggerClass
)

// Names of behaviors bound to nodes, so binding twice is a no-op.
const (
	bindSmoothScroll = "smooth-scroll"
	bindClipboard    = "clipboard"
)

// PageEnhancer applies the page enhancements to a document.
// The operations never fail: missing elements and collaborator errors
// leave the document as it is.
type PageEnhancer interface {
	// SetTitle sets the document title.
	SetTitle(doc *Document, title string)

	// SetIcon replaces the favicon link in the head.
	SetIcon(doc *Document, url, mimeType string)

	// Highlight wraps code blocks with copy triggers, then highlights,
	// numbers and typesets them.
	Highlight(doc *Document)

	// SmoothScroll makes in-page anchors scroll smoothly to their target.
	SmoothScroll(doc *Document)
}

// Enhancer is the PageEnhancer implementation. It holds only its
// collaborators; all state lives in the documents it is given.
type Enhancer struct {
	highlighter Highlighter
	typesetter  Typesetter
	scroller    Scroller
	clipboard   Clipboard
	copyLabel   string
	lineNumbers bool
	logger      zerolog.Logger
}

var _ PageEnhancer = (*Enhancer)(nil)

// EnhancerOption configures an Enhancer.
type EnhancerOption func(*Enhancer)

// WithHighlighter sets the syntax highlighter.
func WithHighlighter(h Highlighter) EnhancerOption {
	return func(e *Enhancer) {
		e.highlighter = h
	}
}

// WithTypesetter sets the math typesetter.
func WithTypesetter(t Typesetter) EnhancerOption {
	return func(e *Enhancer) {
		e.typesetter = t
	}
}

// WithScroller sets the scroller used by in-page anchors.
func WithScroller(s Scroller) EnhancerOption {
	return func(e *Enhancer) {
		e.scroller = s
	}
}

// WithClipboard sets the clipboard written by copy triggers.
func WithClipboard(c Clipboard) EnhancerOption {
	return func(e *Enhancer) {
		e.clipboard = c
	}
}

// WithCopyLabel sets the text of copy triggers.
func WithCopyLabel(label string) EnhancerOption {
	return func(e *Enhancer) {
		e.copyLabel = label
	}
}

// WithLineNumbering enables or disables the line numbering pass.
func WithLineNumbering(enabled bool) EnhancerOption {
	return func(e *Enhancer) {
		e.lineNumbers = enabled
	}
}

// WithEnhancerLogger sets the logger reporting skipped enhancements.
func WithEnhancerLogger(logger zerolog.Logger) EnhancerOption {
	return func(e *Enhancer) {
		e.logger = logger
	}
}

// NewEnhancer creates an Enhancer. By default it highlights with chroma,
// numbers lines, typesets math as Unicode and copies to the system clipboard.
func NewEnhancer(opts ...EnhancerOption) *Enhancer {
	e := &Enhancer{
		copyLabel:   DefaultCopyLabel,
		lineNumbers: true,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.highlighter == nil {
		e.highlighter = NewChromaHighlighter(DefaultHighlightStyle)
	}
	if e.typesetter == nil {
		e.typesetter = UnicodeTypesetter{}
	}
	if e.scroller == nil {
		e.scroller = logScroller{logger: e.logger}
	}
	if e.clipboard == nil {
		e.clipboard = SystemClipboard{}
	}
	if e.copyLabel == "" {
		e.copyLabel = DefaultCopyLabel
	}
	return e
}

// SetTitle sets the text of the title element, creating it in the head if
// the document has none.
func (e *Enhancer) SetTitle(doc *Document, title string) {
	if doc == nil {
		return
	}
	t := doc.titleElement()
	if t == nil {
		t = dom.NewElement("title")
		doc.ensureHead().AppendChild(t)
	}
	dom.SetText(t, title)
}

// SetIcon appends <link rel="icon" href=url type=mimeType> to the head after
// removing the icon links already there, so the head ends with exactly one.
// An empty mimeType omits the type attribute.
func (e *Enhancer) SetIcon(doc *Document, url, mimeType string) {
	if doc == nil {
		return
	}
	head := doc.ensureHead()

	link := dom.NewElement("link",
		html.Attribute{Key: "rel", Val: "icon"},
		html.Attribute{Key: "href", Val: url},
	)
	if mimeType != "" {
		dom.SetAttr(link, "type", mimeType)
	}

	for _, old := range dom.FindAll(head, isIconLink) {
		dom.Detach(old)
	}
	head.AppendChild(link)
}

// Highlight enhances every pre element in document order. Each block gets
// an id (kept if present, else code-block-<index>), a code-block container
// and a copy trigger targeting the id. Only once every block is wrapped do
// the highlighting, line numbering and math passes run.
//
// Blocks already inside a container are left alone, and each pass skips
// elements it already processed, so calling Highlight again is a no-op.
func (e *Enhancer) Highlight(doc *Document) {
	if doc == nil {
		return
	}
	root := doc.Root()

	for i, pre := range dom.ByTag(root, "pre") {
		if isWrapped(pre) {
			continue
		}
		id := ensureID(root, pre, i)
		wrapper := dom.NewElement("div", html.Attribute{Key: "class", Val: CodeBlockClass})
		dom.Wrap(pre, wrapper)
		wrapper.AppendChild(e.copyTrigger(id))
	}

	for _, code := range dom.FindAll(root, isPreCode) {
		if dom.HasClass(code, HighlightedClass) {
			continue
		}
		e.run("highlight", code, e.highlighter.HighlightBlock)
	}

	if e.lineNumbers {
		for _, el := range dom.ByClass(root, HighlightedClass) {
			if dom.HasClass(el, LineNumberedClass) {
				continue
			}
			e.run("line numbers", el, e.highlighter.LineNumbersBlock)
		}
	}

	for _, el := range dom.ByClass(root, MathClass) {
		if dom.HasClass(el, TypesetClass) {
			continue
		}
		e.run("typeset", el, e.typesetter.Typeset)
	}
}

// SmoothScroll registers a click listener on every anchor whose href starts
// with "#". A click cancels the jump and scrolls smoothly to the element
// with the fragment id; when there is none, nothing happens.
func (e *Enhancer) SmoothScroll(doc *Document) {
	if doc == nil {
		return
	}
	for _, a := range dom.FindAll(doc.Root(), isFragmentAnchor) {
		if !doc.bindOnce(a, bindSmoothScroll) {
			continue
		}
		dom.SetAttr(a, SmoothScrollAttr, "")
		doc.AddEventListener(a, EventClick, e.scrollTo(doc))
	}
}

func (e *Enhancer) scrollTo(doc *Document) Listener {
	return func(ev *Event) {
		ev.PreventDefault()
		href, _ := dom.Attr(ev.CurrentTarget, "href")
		target := doc.fragmentTarget(href)
		if target == nil {
			e.logger.Debug().Str("href", href).Msg("anchor target not found")
			return
		}
		e.scroller.ScrollIntoView(target, ScrollOptions{Behavior: ScrollSmooth})
	}
}

// BindClipboard registers a click listener on every copy trigger. A click
// copies the text of the trigger's target, without line number gutters.
func (e *Enhancer) BindClipboard(doc *Document) {
	if doc == nil {
		return
	}
	for _, trigger := range dom.ByClass(doc.Root(), ClipboardTriggerClass) {
		if !doc.bindOnce(trigger, bindClipboard) {
			continue
		}
		doc.AddEventListener(trigger, EventClick, e.copyTarget(doc))
	}
}

func (e *Enhancer) copyTarget(doc *Document) Listener {
	return func(ev *Event) {
		sel, _ := dom.Attr(ev.CurrentTarget, ClipboardTargetAttr)
		target := doc.fragmentTarget(sel)
		if target == nil {
			e.logger.Warn().Str("target", sel).Msg("copy target not found")
			return
		}
		if err := e.clipboard.WriteAll(CodeText(target)); err != nil {
			e.logger.Warn().Err(err).Str("target", sel).Msg("copy to clipboard failed")
		}
	}
}

// Enhance applies page to doc, then runs Highlight, SmoothScroll and
// BindClipboard. An icon without a type gets the one guessed from its URL.
func (e *Enhancer) Enhance(doc *Document, page Page) {
	if doc == nil {
		return
	}
	if page.Title != "" {
		e.SetTitle(doc, page.Title)
	}
	if page.Icon != nil && page.Icon.URL != "" {
		e.SetIcon(doc, page.Icon.URL, page.Icon.MediaType())
	}
	e.Highlight(doc)
	e.SmoothScroll(doc)
	e.BindClipboard(doc)
}

// copyTrigger builds the copy control for the block with the given id.
func (e *Enhancer) copyTrigger(id string) *html.Node {
	btn := dom.NewElement("button",
		html.Attribute{Key: "type", Val: "button"},
		html.Attribute{Key: "class", Val: triggerClasses},
		html.Attribute{Key: ClipboardTargetAttr, Val: "#" + id},
		html.Attribute{Key: "aria-label", Val: e.copyLabel},
	)
	btn.AppendChild(dom.NewText(e.copyLabel))
	return btn
}

// run calls a collaborator pass on n. Errors and panics are logged and the
// element is left as the pass left it.
func (e *Enhancer) run(pass string, n *html.Node, fn func(*html.Node) error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("pass", pass).Interface("panic", r).Msg("enhancement pass panicked")
		}
	}()
	if err := fn(n); err != nil {
		e.logger.Warn().Err(err).Str("pass", pass).Msg("enhancement pass failed")
	}
}

// ensureID returns the id of pre, assigning code-block-<index> if it has
// none. The index moves forward while the id is taken elsewhere.
func ensureID(root, pre *html.Node, index int) string {
	if id, ok := dom.Attr(pre, "id"); ok && id != "" {
		return id
	}
	for n := index; ; n++ {
		id := codeBlockIDPrefix + strconv.Itoa(n)
		if dom.ByID(root, id) == nil {
			dom.SetAttr(pre, "id", id)
			return id
		}
	}
}

func isWrapped(pre *html.Node) bool {
	p := pre.Parent
	return p != nil && isHTMLElement(p, atom.Div) && dom.HasClass(p, CodeBlockClass)
}

func isPreCode(n *html.Node) bool {
	return isHTMLElement(n, atom.Code) &&
		dom.Closest(n, func(p *html.Node) bool { return isHTMLElement(p, atom.Pre) }) != nil
}

func isFragmentAnchor(n *html.Node) bool {
	if !isHTMLElement(n, atom.A) {
		return false
	}
	href, ok := dom.Attr(n, "href")
	return ok && strings.HasPrefix(href, "#")
}

// isIconLink matches link elements whose rel has an "icon" token,
// including "shortcut icon".
func isIconLink(n *html.Node) bool {
	if !isHTMLElement(n, atom.Link) {
		return false
	}
	rel, _ := dom.Attr(n, "rel")
	for _, tok := range strings.Fields(rel) {
		if strings.EqualFold(tok, "icon") {
			return true
		}
	}
	return false
}

var defaultEnhancer = NewEnhancer()

// SetTitle sets the document title using the default Enhancer.
func SetTitle(doc *Document, title string) { defaultEnhancer.SetTitle(doc, title) }

// SetIcon replaces the favicon using the default Enhancer.
func SetIcon(doc *Document, url, mimeType string) { defaultEnhancer.SetIcon(doc, url, mimeType) }

// Highlight enhances code blocks and math using the default Enhancer.
func Highlight(doc *Document) { defaultEnhancer.Highlight(doc) }

// SmoothScroll enables smooth anchor scrolling using the default Enhancer.
func SmoothScroll(doc *Document) { defaultEnhancer.SmoothScroll(doc) }
