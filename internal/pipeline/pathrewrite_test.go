package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func rewrite(t *testing.T, src, sourceDir string) string {
	t.Helper()

	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	if err := RewriteRelativePaths(root, sourceDir); err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		t.Fatalf("html.Render: %v", err)
	}
	return b.String()
}

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := "/notes"
	if runtime.GOOS == "windows" {
		sourceDir = `C:\notes`
	}

	tests := []struct {
		name         string
		html         string
		wantContains []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./images/plot.png">`,
			wantContains: []string{`src="file://`, `images/plot.png"`},
		},
		{
			name:         "relative link",
			html:         `<a href="other.md">next</a>`,
			wantContains: []string{`href="file://`, `other.md"`},
		},
		{
			name:         "fragment link unchanged",
			html:         `<a href="#setup">setup</a>`,
			wantContains: []string{`href="#setup"`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/plot.png">`,
			wantContains: []string{`src="/abs/plot.png"`},
		},
		{
			name:         "https URL unchanged",
			html:         `<img src="https://example.com/a.png">`,
			wantContains: []string{`src="https://example.com/a.png"`},
		},
		{
			name:         "data URI unchanged",
			html:         `<img src="data:image/png;base64,AAAA">`,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:me@example.com">me</a>`,
			wantContains: []string{`href="mailto:me@example.com"`},
		},
		{
			name:         "traversal outside source dir unchanged",
			html:         `<img src="../../etc/passwd">`,
			wantContains: []string{`src="../../etc/passwd"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := rewrite(t, tt.html, sourceDir)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("result missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_EmptySourceDir(t *testing.T) {
	t.Parallel()

	got := rewrite(t, `<img src="plot.png">`, "")
	if !strings.Contains(got, `src="plot.png"`) {
		t.Errorf("empty sourceDir rewrote path: %s", got)
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	dir := filepath.FromSlash("/notes")
	tests := []struct {
		path string
		want bool
	}{
		{path: filepath.FromSlash("/notes/a.png"), want: true},
		{path: filepath.FromSlash("/notes"), want: true},
		{path: filepath.FromSlash("/notesx/a.png"), want: false},
		{path: filepath.FromSlash("/etc/passwd"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isPathUnderDir(tt.path, dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
			}
		})
	}
}
