package notepage

import (
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/alnah/go-notepage/internal/dom"
)

// Scroll behaviors.
const (
	ScrollSmooth = "smooth"
	ScrollAuto   = "auto"
)

// ScrollOptions mirrors the options of Element.scrollIntoView.
type ScrollOptions struct {
	Behavior string
}

// Scroller moves the viewport to an element.
type Scroller interface {
	ScrollIntoView(target *html.Node, opts ScrollOptions)
}

// logScroller records scroll requests in the log. There is no viewport
// outside a browser, so this is the default.
type logScroller struct {
	logger zerolog.Logger
}

func (s logScroller) ScrollIntoView(target *html.Node, opts ScrollOptions) {
	id, _ := dom.Attr(target, "id")
	s.logger.Debug().
		Str("target", id).
		Str("behavior", opts.Behavior).
		Msg("scroll into view")
}
