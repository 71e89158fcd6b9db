package notepage

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-notepage/internal/dom"
	"github.com/alnah/go-notepage/internal/latex"
)

// Class names and attributes of math elements.
const (
	// MathClass marks an element holding TeX source.
	MathClass = "math"

	// TypesetClass marks a math element already typeset.
	TypesetClass = "math-typeset"

	mathDisplayClass = "math-display"
	texAttr          = "data-tex"
)

// Typesetter renders the math held by an element.
type Typesetter interface {
	Typeset(el *html.Node) error
}

// UnicodeTypesetter renders TeX as Unicode text, so typeset math needs no
// script or font at view time. The source is kept in data-tex.
type UnicodeTypesetter struct{}

var _ Typesetter = UnicodeTypesetter{}

// Typeset replaces the TeX in el with its Unicode rendering. Delimiters
// ($..$, $$..$$, \(..\), \[..\]) are optional; display delimiters add the
// math-display class.
func (UnicodeTypesetter) Typeset(el *html.Node) error {
	if el == nil || dom.HasClass(el, TypesetClass) {
		return nil
	}

	tex, display := latex.StripDelimiters(dom.TextContent(el))
	dom.SetAttr(el, texAttr, tex)
	dom.SetText(el, latex.Convert(tex))
	dom.AddClass(el, TypesetClass)
	if display {
		dom.AddClass(el, mathDisplayClass)
	}
	return nil
}
