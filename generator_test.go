package notepage

import (
	"strings"
	"testing"

	"github.com/alnah/go-notepage/internal/dom"
)

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
		want bool
	}{
		{name: "marked page", page: `<html><head><meta name="generator" content="notepage"><title>x</title></head><body></body></html>`, want: true},
		{name: "self closing meta", page: `<meta content="notepage" name="Generator"/><p>x</p>`, want: true},
		{name: "other generator", page: `<head><meta name="generator" content="Hugo 0.120"></head>`},
		{name: "marker only in body", page: `<body><meta name="generator" content="notepage"></body>`},
		{name: "no head", page: `<h1>hand written</h1>`},
		{name: "empty", page: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsGenerated(strings.NewReader(tt.page)); got != tt.want {
				t.Errorf("IsGenerated(%q) = %v, want %v", tt.page, got, tt.want)
			}
		})
	}
}

func TestMarkGenerated(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<html><head><title>t</title><meta name="generator" content="Hugo"></head><body></body></html>`)
	markGenerated(doc.Head())
	markGenerated(doc.Head())

	metas := dom.FindAll(doc.Head(), isGeneratorMeta)
	if len(metas) != 1 {
		t.Fatalf("got %d generator meta elements, want 1", len(metas))
	}
	if metas[0] != doc.Head().FirstChild {
		t.Error("generator meta is not the first head element")
	}
	if !IsGenerated(strings.NewReader(doc.String())) {
		t.Errorf("rendered page not recognized as generated:\n%s", doc.String())
	}
}
