package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	notepage "github.com/alnah/go-notepage"
	"github.com/alnah/go-notepage/internal/fileutil"
	"github.com/alnah/go-notepage/internal/logging"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrNoNotes     = errors.New("no notes found")
	ErrReadNote    = errors.New("failed to read note")
	ErrWriteOutput = errors.New("failed to write output")
	ErrCreateDir   = errors.New("failed to create output directory")
)

// conversionParams groups parameters shared by every file of a batch.
type conversionParams struct {
	title string
	icon  *notepage.Icon
	pdf   bool
	page  *notepage.PageSettings
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Title      string
	Err        error
	Duration   time.Duration
}

// convertBatch converts files concurrently, at most pool.Size() at a time.
// A failed file does not stop the others; results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(pool.Size())

	for i, f := range files {
		g.Go(func() error {
			fileCtx := logging.WithFile(ctx, f.InputPath)

			conv, err := pool.Acquire(fileCtx)
			if err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			defer pool.Release(conv)

			results[i] = convertFile(fileCtx, conv, f, params)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// convertFile converts a single note and writes its outputs.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	logger := logging.FromContext(ctx)
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
		PDFPath:    f.PDFPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		logger.Debug().Err(err).Msg("conversion failed")
		return result
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadNote, err))
	}

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadNote, err))
	}

	input := notepage.Input{
		Title:     params.title,
		Icon:      iconFor(params.icon, f.OutputPath),
		SourceDir: sourceDir,
		PDF:       params.pdf,
		Page:      params.page,
	}
	if fileutil.NoteKind(f.InputPath) == fileutil.KindHTML {
		input.HTML = string(content)
	} else {
		input.Markdown = string(content)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrCreateDir, err))
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return fail(err)
	}
	result.Title = res.Title

	// #nosec G306 -- pages are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if params.pdf && f.PDFPath != "" {
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(f.PDFPath, res.PDF, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	result.Duration = time.Since(start)
	logger.Debug().
		Str("output", f.OutputPath).
		Str("title", res.Title).
		Dur("duration", result.Duration).
		Msg("note converted")
	return result
}

// iconFor returns the icon of the page written to outputPath. A local icon
// file is linked relative to the page so the output directory stays portable.
func iconFor(icon *notepage.Icon, outputPath string) *notepage.Icon {
	if icon == nil || fileutil.IsURL(icon.URL) || !fileutil.FileExists(icon.URL) {
		return icon
	}

	absIcon, err := filepath.Abs(icon.URL)
	if err != nil {
		return icon
	}
	absDir, err := filepath.Abs(filepath.Dir(outputPath))
	if err != nil {
		return icon
	}
	rel, err := filepath.Rel(absDir, absIcon)
	if err != nil {
		return icon
	}

	out := *icon
	if out.Type == "" {
		out.Type = notepage.IconTypeFor(icon.URL)
	}
	out.URL = filepath.ToSlash(rel)
	return &out
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, env))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%q, %v)\n", r.InputPath, r.OutputPath, r.Title, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
