package notepage

import (
	"testing"

	"github.com/alnah/go-notepage/internal/dom"
)

func TestUnicodeTypesetter_Typeset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		page        string
		wantText    string
		wantTeX     string
		wantDisplay bool
	}{
		{name: "inline parens", page: `<span class="math">\(\alpha^2\)</span>`, wantText: "α²", wantTeX: `\alpha^2`},
		{name: "display brackets", page: `<span class="math">\[\sum_{i=1}^{n} i\]</span>`, wantText: "∑ᵢ₌₁ⁿ i", wantTeX: `\sum_{i=1}^{n} i`, wantDisplay: true},
		{name: "dollar delimiters", page: `<span class="math">$x \leq y$</span>`, wantText: "x ≤ y", wantTeX: `x \leq y`},
		{name: "double dollar", page: `<div class="math">$$\frac{1}{2}$$</div>`, wantText: "½", wantTeX: `\frac{1}{2}`, wantDisplay: true},
		{name: "bare content", page: `<span class="math">a \cdot b</span>`, wantText: "a ⋅ b", wantTeX: `a \cdot b`},
		{name: "escaped markup", page: `<span class="math">\(a &lt; b\)</span>`, wantText: "a < b", wantTeX: "a < b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.page)
			el := dom.ByClass(doc.Root(), MathClass)[0]

			if err := (UnicodeTypesetter{}).Typeset(el); err != nil {
				t.Fatalf("Typeset() error = %v", err)
			}

			if got := dom.TextContent(el); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if got, _ := dom.Attr(el, texAttr); got != tt.wantTeX {
				t.Errorf("%s = %q, want %q", texAttr, got, tt.wantTeX)
			}
			if !dom.HasClass(el, TypesetClass) {
				t.Error("element not marked typeset")
			}
			if got := dom.HasClass(el, mathDisplayClass); got != tt.wantDisplay {
				t.Errorf("display class = %v, want %v", got, tt.wantDisplay)
			}
		})
	}
}

func TestUnicodeTypesetter_SkipsTypeset(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<span class="math">\(x^2\)</span>`)
	el := dom.ByClass(doc.Root(), MathClass)[0]
	ts := UnicodeTypesetter{}

	_ = ts.Typeset(el)
	_ = ts.Typeset(el)

	if got := dom.TextContent(el); got != "x²" {
		t.Errorf("text after second pass = %q, want x²", got)
	}
	if got, _ := dom.Attr(el, texAttr); got != "x^2" {
		t.Errorf("%s after second pass = %q, want x^2", texAttr, got)
	}
}
