package pipeline

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-notepage/internal/dom"
)

// ErrNoHead is returned when a page has no head to receive stylesheets.
var ErrNoHead = errors.New("page has no head element")

// StyleInjector adds stylesheets to a parsed page.
type StyleInjector interface {
	InjectStyles(ctx context.Context, head *html.Node, sheets ...string) error
}

// HeadStyles appends one <style> element per non-blank sheet to the head,
// in order, so later sheets override earlier ones.
type HeadStyles struct{}

// InjectStyles implements StyleInjector.
func (HeadStyles) InjectStyles(ctx context.Context, head *html.Node, sheets ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if head == nil {
		return ErrNoHead
	}
	for _, css := range sheets {
		if strings.TrimSpace(css) == "" {
			continue
		}
		style := dom.NewElement("style")
		style.AppendChild(dom.NewText(styleText(css)))
		head.AppendChild(style)
	}
	return nil
}

// styleText keeps CSS from closing its <style> element early. Style
// content is rendered raw, so "</" must not appear in it.
func styleText(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
