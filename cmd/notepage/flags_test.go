package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	f, args, err := parseFlags([]string{"notes/"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if len(args) != 1 || args[0] != "notes/" {
		t.Errorf("args = %v, want [notes/]", args)
	}
	if f.output != "" || f.workers != 0 || f.timeout != "" {
		t.Errorf("unexpected I/O defaults: %+v", f)
	}
	if f.pdf.enabled || f.highlight.noLineNumbers || f.version {
		t.Errorf("boolean flags should default to false: %+v", f)
	}
}

func TestParseFlags_Values(t *testing.T) {
	t.Parallel()

	f, args, err := parseFlags([]string{
		"-o", "site/", "-w", "4", "-t", "1m",
		"-c", "work", "-q", "-v", "--log-format", "json",
		"--title", "Runbook", "--icon", "i.svg", "--icon-type", "image/svg+xml",
		"--highlight-style", "monokai", "--no-line-numbers", "--copy-label", "Copier",
		"--pdf", "-p", "a4", "--orientation", "landscape", "--margin", "1.5",
		"--style", "minimal", "--asset-path", "./assets",
		"a.md", "b.md",
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"output", f.output, "site/"},
		{"workers", f.workers, 4},
		{"timeout", f.timeout, "1m"},
		{"config", f.common.config, "work"},
		{"quiet", f.common.quiet, true},
		{"verbose", f.common.verbose, true},
		{"log format", f.common.logFormat, "json"},
		{"title", f.page.title, "Runbook"},
		{"icon", f.page.icon, "i.svg"},
		{"icon type", f.page.iconType, "image/svg+xml"},
		{"highlight style", f.highlight.style, "monokai"},
		{"no line numbers", f.highlight.noLineNumbers, true},
		{"copy label", f.highlight.copyLabel, "Copier"},
		{"pdf", f.pdf.enabled, true},
		{"page size", f.pdf.size, "a4"},
		{"orientation", f.pdf.orientation, "landscape"},
		{"margin", f.pdf.margin, 1.5},
		{"style", f.assets.style, "minimal"},
		{"asset path", f.assets.assetPath, "./assets"},
		{"positional", strings.Join(args, ","), "a.md,b.md"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _, err := parseFlags([]string{"--help"}, &buf)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("error = %v, want flag.ErrHelp", err)
		}
		if !strings.Contains(buf.String(), "notepage") {
			t.Errorf("usage output missing program name:\n%s", buf.String())
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseFlags([]string{"--watermark"}, &bytes.Buffer{})
		if err == nil {
			t.Fatal("expected error for unknown flag")
		}
	})

	t.Run("bad integer", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseFlags([]string{"-w", "lots"}, &bytes.Buffer{})
		if err == nil {
			t.Fatal("expected error for non-numeric workers")
		}
	})
}
