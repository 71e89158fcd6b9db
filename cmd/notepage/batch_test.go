package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	notepage "github.com/alnah/go-notepage"
)

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":     "# Alpha",
		"b.md":     "# Beta BROKEN",
		"c.html":   "<h1>Gamma</h1>",
		"sub/d.md": "# Delta",
	})
	out := filepath.Join(t.TempDir(), "site")

	files := []FileToConvert{
		newFileToConvert(filepath.Join(dir, "a.md"), out, dir, false),
		newFileToConvert(filepath.Join(dir, "b.md"), out, dir, false),
		newFileToConvert(filepath.Join(dir, "c.html"), out, dir, false),
		newFileToConvert(filepath.Join(dir, "sub", "d.md"), out, dir, false),
	}

	conv := &mockConverter{err: notepage.ErrPageLoad, failOn: "BROKEN"}
	pool := &testPool{conv: conv, size: 2}

	results := convertBatch(context.Background(), pool, files, &conversionParams{title: "Fixed"})

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d].InputPath = %q, want %q (order must follow input)", i, r.InputPath, files[i].InputPath)
		}
	}

	if !errors.Is(results[1].Err, notepage.ErrPageLoad) {
		t.Errorf("results[1].Err = %v, want ErrPageLoad", results[1].Err)
	}
	for _, i := range []int{0, 2, 3} {
		if results[i].Err != nil {
			t.Errorf("results[%d].Err = %v", i, results[i].Err)
			continue
		}
		if results[i].Title != "Fixed" {
			t.Errorf("results[%d].Title = %q, want Fixed", i, results[i].Title)
		}
		if got := readFile(t, results[i].OutputPath); !strings.Contains(got, "<title>Fixed</title>") {
			t.Errorf("page %s = %q", results[i].OutputPath, got)
		}
	}

	if got := filepath.Base(results[2].OutputPath); got != "c.enhanced.html" {
		t.Errorf("html note written to %q, want c.enhanced.html", got)
	}
	if got := results[3].OutputPath; got != filepath.Join(out, "sub", "d.html") {
		t.Errorf("nested note written to %q", got)
	}

	var sawHTML, sawMarkdown bool
	for _, in := range conv.calls() {
		if in.HTML != "" {
			sawHTML = true
		}
		if in.Markdown != "" {
			sawMarkdown = true
		}
		if !filepath.IsAbs(in.SourceDir) {
			t.Errorf("SourceDir %q is not absolute", in.SourceDir)
		}
	}
	if !sawHTML || !sawMarkdown {
		t.Errorf("converter saw HTML=%v Markdown=%v, want both", sawHTML, sawMarkdown)
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &testPool{conv: &mockConverter{}, size: 1}, nil, &conversionParams{}); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_AcquireError(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "# A"})
	pool := &testPool{conv: &mockConverter{}, size: 1, acquireErr: notepage.ErrPoolClosed}

	results := convertBatch(context.Background(), pool, []FileToConvert{
		newFileToConvert(filepath.Join(dir, "a.md"), "", "", false),
	}, &conversionParams{})

	if !errors.Is(results[0].Err, notepage.ErrPoolClosed) {
		t.Errorf("Err = %v, want ErrPoolClosed", results[0].Err)
	}
}

func TestConvertFile_PDF(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"report.md": "# Report"})
	f := newFileToConvert(filepath.Join(dir, "report.md"), filepath.Join(dir, "out"), "", true)
	page := notepage.DefaultPageSettings()

	conv := &mockConverter{}
	res := convertFile(context.Background(), conv, f, &conversionParams{pdf: true, page: page})
	if res.Err != nil {
		t.Fatalf("convertFile() error = %v", res.Err)
	}

	if got := readFile(t, f.PDFPath); !strings.HasPrefix(got, "%PDF") {
		t.Errorf("pdf content = %q", got)
	}
	calls := conv.calls()
	if len(calls) != 1 || !calls[0].PDF || calls[0].Page != page {
		t.Errorf("converter input = %+v, want PDF with page settings", calls)
	}
}

func TestConvertFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing note", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		f := newFileToConvert(filepath.Join(dir, "gone.md"), "", "", false)
		res := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{})
		if !errors.Is(res.Err, ErrReadNote) {
			t.Errorf("Err = %v, want ErrReadNote", res.Err)
		}
	})

	t.Run("output directory blocked by a file", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.md": "# A", "blocker": "file"})
		f := FileToConvert{
			InputPath:  filepath.Join(dir, "a.md"),
			OutputPath: filepath.Join(dir, "blocker", "a.html"),
		}
		res := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{})
		if !errors.Is(res.Err, ErrCreateDir) {
			t.Errorf("Err = %v, want ErrCreateDir", res.Err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conv := &mockConverter{}
		res := convertFile(ctx, conv, FileToConvert{InputPath: "a.md"}, &conversionParams{})
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("Err = %v, want context.Canceled", res.Err)
		}
		if len(conv.calls()) != 0 {
			t.Error("converter called after cancellation")
		}
	})
}

func TestIconFor(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"icon.png": "png"})
	localIcon := filepath.Join(dir, "icon.png")
	output := filepath.Join(dir, "site", "docs", "page.html")

	tests := []struct {
		name     string
		icon     *notepage.Icon
		wantURL  string
		wantType string
	}{
		{name: "nil", icon: nil},
		{
			name:    "remote url unchanged",
			icon:    &notepage.Icon{URL: "https://example.com/favicon.ico"},
			wantURL: "https://example.com/favicon.ico",
		},
		{
			name:    "missing local file unchanged",
			icon:    &notepage.Icon{URL: "nowhere/icon.png"},
			wantURL: "nowhere/icon.png",
		},
		{
			name:     "local file made relative to the page",
			icon:     &notepage.Icon{URL: localIcon},
			wantURL:  "../../icon.png",
			wantType: "image/png",
		},
		{
			name:     "explicit type kept",
			icon:     &notepage.Icon{URL: localIcon, Type: "image/x-custom"},
			wantURL:  "../../icon.png",
			wantType: "image/x-custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := iconFor(tt.icon, output)
			if tt.icon == nil {
				if got != nil {
					t.Errorf("iconFor(nil) = %+v, want nil", got)
				}
				return
			}
			if got.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", got.URL, tt.wantURL)
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
		})
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.html", Title: "A", Duration: 12 * time.Millisecond},
		{InputPath: "b.md", OutputPath: "b.html", PDFPath: "b.pdf", Title: "B"},
		{InputPath: "c.md", Err: notepage.ErrStyleNotFound},
	}

	tests := []struct {
		name           string
		quiet, verbose bool
		wantStdout     []string
		avoidStdout    []string
	}{
		{
			name:       "default",
			wantStdout: []string{"Created a.html", "Created b.html", "Created b.pdf", "2 succeeded, 1 failed"},
		},
		{
			name:        "quiet",
			quiet:       true,
			avoidStdout: []string{"Created", "succeeded"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{`a.md -> a.html ("A", 12ms)`, "Created b.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			failed := printResults(results, tt.quiet, tt.verbose, env)

			if failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			if !strings.Contains(stderr.String(), "FAILED c.md") {
				t.Errorf("stderr missing failure line:\n%s", stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout.String())
				}
			}
			for _, avoid := range tt.avoidStdout {
				if strings.Contains(stdout.String(), avoid) {
					t.Errorf("stdout contains %q:\n%s", avoid, stdout.String())
				}
			}
		})
	}
}
