// Package notepage enhances rendered note pages.
//
// # Page Enhancement
//
// A note page is a parsed HTML Document. The four enhancements mutate it in
// place and never fail:
//
//	doc, err := notepage.ParseDocumentString(page)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	notepage.SetTitle(doc, "Release notes")
//	notepage.SetIcon(doc, "/favicon.svg", "image/svg+xml")
//	notepage.Highlight(doc)
//	notepage.SmoothScroll(doc)
//	html := doc.String()
//
// Highlight wraps every pre element in a div.code-block container with a
// copy trigger (button.clipboard-trigger with data-clipboard-target="#id"),
// then highlights each pre code element, numbers its lines and typesets every
// .math element. SmoothScroll attaches click listeners to in-page anchors;
// Document.Click simulates a click.
//
// The highlighter, math typesetter, scroller and clipboard are interfaces.
// NewEnhancer wires chroma, a Unicode TeX renderer, a logging scroller and
// the system clipboard by default:
//
//	e := notepage.NewEnhancer(
//	    notepage.WithScroller(myScroller),
//	    notepage.WithLineNumbering(false),
//	)
//	e.Enhance(doc, notepage.Page{Title: "Notes"})
//
// # Conversion
//
// Converter renders Markdown (or existing HTML) into a complete enhanced page
// with stylesheets, and optionally a PDF through headless Chrome:
//
//	conv, err := notepage.NewConverter(notepage.WithHighlightStyle("monokai"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, notepage.Input{
//	    Markdown: "# Notes\n\n```go\nfmt.Println(1)\n```",
//	    Icon:     &notepage.Icon{URL: "favicon.png"},
//	})
//
// For batch conversion, ConverterPool holds one converter (and browser) per
// worker; ResolvePoolSize picks a size from GOMAXPROCS.
package notepage
