package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	notepage "github.com/alnah/go-notepage"
	"github.com/alnah/go-notepage/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md, .markdown, .html or .htm extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputCollision    = errors.New("output would overwrite another file")
)

// sniffLimit bounds how much of an HTML file is read to find its generator.
const sniffLimit = 64 << 10

// enhancedSuffix marks pages written by a previous run next to their HTML source.
const enhancedSuffix = ".enhanced.html"

// FileToConvert represents a single note to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string // enhanced HTML page
	PDFPath    string // empty unless PDF output is requested
}

// discoverFiles finds all notes to convert under inputPath.
func discoverFiles(inputPath, outputDir string, pdf bool) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateNoteExtension(inputPath); err != nil {
			return nil, err
		}
		files := []FileToConvert{newFileToConvert(inputPath, outputDir, "", pdf)}
		explicit := strings.EqualFold(filepath.Ext(outputDir), ".html")
		return files, checkOutputs(files, explicit)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		switch fileutil.NoteKind(path) {
		case fileutil.KindUnknown:
			return nil
		case fileutil.KindHTML:
			if strings.HasSuffix(path, enhancedSuffix) || isGeneratedPage(path) {
				return nil
			}
		}
		files = append(files, newFileToConvert(path, outputDir, inputPath, pdf))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, checkOutputs(files, false)
}

// checkOutputs refuses pages that would land on a note being converted, on
// the page of another note, or on an existing HTML file this tool did not
// write. An explicit output file is the user's choice and is only checked
// against the inputs.
func checkOutputs(files []FileToConvert, explicit bool) error {
	inputs := make(map[string]bool, len(files))
	for _, f := range files {
		inputs[filepath.Clean(f.InputPath)] = true
	}

	owners := make(map[string]string, len(files))
	for _, f := range files {
		out := filepath.Clean(f.OutputPath)
		switch {
		case inputs[out]:
			return fmt.Errorf("%w: %s would be written over the note %s", ErrOutputCollision, f.InputPath, out)
		case owners[out] != "":
			return fmt.Errorf("%w: %s and %s both render to %s", ErrOutputCollision, owners[out], f.InputPath, out)
		case !explicit && fileutil.FileExists(out) && !isGeneratedPage(out):
			return fmt.Errorf("%w: %s would replace %s, which was not generated by %s",
				ErrOutputCollision, f.InputPath, out, notepage.Generator)
		}
		owners[out] = f.InputPath
	}
	return nil
}

// isGeneratedPage reports whether path holds a page written by a previous run.
func isGeneratedPage(path string) bool {
	f, err := os.Open(path) // #nosec G304 -- path comes from the directory walk
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()
	return notepage.IsGenerated(io.LimitReader(f, sniffLimit))
}

// newFileToConvert resolves the output paths of one note.
func newFileToConvert(inputPath, outputDir, baseInputDir string, pdf bool) FileToConvert {
	f := FileToConvert{InputPath: inputPath}

	// An explicit .html output names the page of a single note.
	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), ".html") {
		f.OutputPath = outputDir
		if pdf {
			f.PDFPath = strings.TrimSuffix(outputDir, filepath.Ext(outputDir)) + ".pdf"
		}
		return f
	}

	dir := outputDir
	if dir != "" && baseInputDir != "" {
		// Mirror the input tree under the output directory.
		if rel, err := filepath.Rel(baseInputDir, filepath.Dir(inputPath)); err == nil {
			dir = filepath.Join(outputDir, rel)
		}
	}

	f.OutputPath = fileutil.OutputPath(inputPath, dir, "html")
	if pdf {
		f.PDFPath = fileutil.OutputPath(inputPath, dir, "pdf")
	}
	return f
}

// validateNoteExtension checks that the file is a Markdown or HTML note.
func validateNoteExtension(path string) error {
	if fileutil.NoteKind(path) == fileutil.KindUnknown {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > notepage.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, notepage.MaxPoolSize)
	}
	return nil
}
