package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	notepage "github.com/alnah/go-notepage"
)

// generatedHead marks mock pages the way the converter marks real ones.
const generatedHead = `<meta name="generator" content="notepage">`

// mockConverter records inputs and returns a page naming its title.
type mockConverter struct {
	mu     sync.Mutex
	inputs []notepage.Input
	err    error
	failOn string // substring of the note content that triggers err
}

func (m *mockConverter) Convert(_ context.Context, input notepage.Input) (*notepage.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	content := input.Markdown + input.HTML
	if m.err != nil && (m.failOn == "" || strings.Contains(content, m.failOn)) {
		return nil, m.err
	}

	title := input.Title
	if title == "" {
		title = "Note"
	}
	res := &notepage.Result{
		HTML:  []byte(generatedHead + "<title>" + title + "</title>" + content),
		Title: title,
	}
	if input.PDF {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	return res, nil
}

func (m *mockConverter) calls() []notepage.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notepage.Input(nil), m.inputs...)
}

// testPool is a Pool handing out a single shared mock converter.
type testPool struct {
	conv       *mockConverter
	size       int
	opts       []notepage.Option
	acquireErr error
	closed     bool
}

func (p *testPool) Acquire(ctx context.Context) (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.conv, nil
}

func (p *testPool) Release(CLIConverter) {}
func (p *testPool) Size() int            { return p.size }
func (p *testPool) Close() error {
	p.closed = true
	return nil
}

// factory returns a poolFactory that records the size and options it got.
func (p *testPool) factory() poolFactory {
	return func(size int, opts ...notepage.Option) Pool {
		p.size = size
		p.opts = opts
		return p
	}
}

// testEnv returns an environment with captured output and the given variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
