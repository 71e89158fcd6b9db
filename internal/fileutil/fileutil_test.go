package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-notepage/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "valid extension html", extension: "html", wantErr: nil},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash path traversal", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash path traversal", extension: `..\windows`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte injection", extension: "html\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "<html><body>note</body></html>"
	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.Contains(filepath.Base(path), "notepage-") {
		t.Errorf("path %q does not contain prefix 'notepage-'", path)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q does not end with .html", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}

	cleanup()
	if fileutil.FileExists(path) {
		t.Errorf("temp file %q still exists after cleanup", path)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.WriteTempFile("x", "../html")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "note.md")
	if err := os.WriteFile(file, []byte("# x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Errorf("FileExists(%q) = false, want true", file)
	}
	if fileutil.FileExists(dir) {
		t.Errorf("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing.md")) {
		t.Errorf("FileExists(missing) = true, want false")
	}
}

func TestStyleInputClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantPath bool
		wantCSS  bool
	}{
		{input: "minimal"},
		{input: "./notes.css", wantPath: true},
		{input: `C:\styles\notes.css`, wantPath: true},
		{input: "body { margin: 0 }", wantCSS: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.wantPath {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.wantPath)
			}
			if got := fileutil.IsCSS(tt.input); got != tt.wantCSS {
				t.Errorf("IsCSS(%q) = %v, want %v", tt.input, got, tt.wantCSS)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "https://example.com/favicon.ico", want: true},
		{input: "http://example.com/favicon.ico", want: true},
		{input: "data:image/png;base64,AAAA", want: true},
		{input: "favicon.ico", want: false},
		{input: "/abs/favicon.ico", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoteKindAndOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		outDir    string
		extension string
		wantKind  int
		wantPath  string
	}{
		{input: "notes/a.md", extension: "html", wantKind: fileutil.KindMarkdown, wantPath: filepath.Join("notes", "a.html")},
		{input: "notes/a.MARKDOWN", outDir: "out", extension: "pdf", wantKind: fileutil.KindMarkdown, wantPath: filepath.Join("out", "a.pdf")},
		{input: "notes/b.html", extension: "html", wantKind: fileutil.KindHTML, wantPath: filepath.Join("notes", "b.enhanced.html")},
		{input: "notes/c.txt", extension: "html", wantKind: fileutil.KindUnknown, wantPath: filepath.Join("notes", "c.html")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.NoteKind(tt.input); got != tt.wantKind {
				t.Errorf("NoteKind(%q) = %d, want %d", tt.input, got, tt.wantKind)
			}
			if got := fileutil.OutputPath(tt.input, tt.outDir, tt.extension); got != tt.wantPath {
				t.Errorf("OutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outDir, tt.extension, got, tt.wantPath)
			}
		})
	}
}
