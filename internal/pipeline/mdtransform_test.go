package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	p := &NotePreprocessor{}

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "normalizes CRLF",
			input:        "a\r\nb\rc",
			wantContains: []string{"a\nb\nc"},
			wantExcludes: []string{"\r"},
		},
		{
			name:         "compresses blank lines",
			input:        "a\n\n\n\n\nb",
			wantContains: []string{"a\n\nb"},
		},
		{
			name:         "inline dollar math",
			input:        "area $\\pi r^2$ here",
			wantContains: []string{InlineMathPlaceholder, MathEndPlaceholder},
			wantExcludes: []string{"$"},
		},
		{
			name:         "display dollar math",
			input:        "$$\n\\sum_i x_i\n$$",
			wantContains: []string{DisplayMathPlaceholder},
			wantExcludes: []string{"$$"},
		},
		{
			name:         "bracket delimiters",
			input:        `see \(a_1\) and \[b\]`,
			wantContains: []string{InlineMathPlaceholder, DisplayMathPlaceholder},
		},
		{
			name:         "prices are not math",
			input:        "costs $5 and $6 today",
			wantContains: []string{"costs $5 and $6 today"},
			wantExcludes: []string{InlineMathPlaceholder},
		},
		{
			name:         "fenced code untouched",
			input:        "```sh\necho $HOME $PATH\n```\n",
			wantContains: []string{"echo $HOME $PATH"},
			wantExcludes: []string{InlineMathPlaceholder},
		},
		{
			name:         "indented code untouched",
			input:        "    echo $a$b\n",
			wantContains: []string{"    echo $a$b"},
			wantExcludes: []string{InlineMathPlaceholder},
		},
		{
			name:         "indented code after paragraph",
			input:        "area $x$\n\n    cost $5$ and \\(y\\)\n\nafter $z$\n",
			wantContains: []string{"    cost $5$ and \\(y\\)", InlineMathPlaceholder},
			wantExcludes: []string{"$x$", "$z$"},
		},
		{
			name:         "indented code followed by fence",
			input:        "    $a$\n```\n$b$\n```\n$c$\n",
			wantContains: []string{"    $a$", "$b$"},
			wantExcludes: []string{"$c$"},
		},
		{
			name:         "lazy paragraph continuation is prose",
			input:        "para\n    $y$\n",
			wantContains: []string{InlineMathPlaceholder},
			wantExcludes: []string{"$y$"},
		},
		{
			name:         "list item continuation is prose",
			input:        "- item\n\n    more $z$\n",
			wantContains: []string{InlineMathPlaceholder},
			wantExcludes: []string{"$z$"},
		},
		{
			name:         "code span untouched",
			input:        "run `echo $a$` then $x$",
			wantContains: []string{"`echo $a$`", InlineMathPlaceholder},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.PreprocessMarkdown(context.Background(), tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("result missing %q:\n%q", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("result should not contain %q:\n%q", exclude, got)
				}
			}
		})
	}
}

func TestMathRoundTrip(t *testing.T) {
	t.Parallel()

	p := &NotePreprocessor{}
	got := ExpandMathPlaceholders(p.PreprocessMarkdown(context.Background(), `if $a<b$ then $$x_1*y_2$$`))

	want := []string{
		`<span class="math">\(a&lt;b\)</span>`,
		`<span class="math math-display">\[x_1*y_2\]</span>`,
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("expanded output missing %q:\n%s", w, got)
		}
	}
}

func TestExpandMathPlaceholders_NoMath(t *testing.T) {
	t.Parallel()

	in := "<p>plain</p>"
	if got := ExpandMathPlaceholders(in); got != in {
		t.Errorf("ExpandMathPlaceholders(%q) = %q", in, got)
	}
}

func TestPreprocessMarkdown_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &NotePreprocessor{}
	in := "a\r\n$x$"
	if got := p.PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("PreprocessMarkdown() with canceled context = %q, want input unchanged", got)
	}
}
