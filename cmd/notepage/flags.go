package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// pageFlags holds page metadata flags.
type pageFlags struct {
	title    string
	icon     string
	iconType string
}

// highlightFlags holds code block flags.
type highlightFlags struct {
	style         string
	noLineNumbers bool
	copyLabel     string
}

// pdfFlags holds PDF export flags.
type pdfFlags struct {
	enabled     bool
	size        string
	orientation string
	margin      float64
}

// assetFlags holds styling flags.
type assetFlags struct {
	style     string // name, path or CSS content
	assetPath string // directory of custom styles
}

// cliFlags holds all flags of the notepage command.
type cliFlags struct {
	common      commonFlags
	output      string
	workers     int
	timeout     string
	page        pageFlags
	highlight   highlightFlags
	pdf         pdfFlags
	assets      assetFlags
	version     bool
	printConfig bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

// addPageFlags adds page metadata flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.title, "title", "", "page title (\"\" = first h1)")
	fs.StringVar(&f.icon, "icon", "", "page icon URL or path")
	fs.StringVar(&f.iconType, "icon-type", "", "page icon media type (\"\" = from extension)")
}

// addHighlightFlags adds code block flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "code highlighting style (chroma name)")
	fs.BoolVar(&f.noLineNumbers, "no-line-numbers", false, "disable line numbers on code blocks")
	fs.StringVar(&f.copyLabel, "copy-label", "", "text of the copy buttons")
}

// addPDFFlags adds PDF export flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also render a PDF next to each page")
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addAssetFlags adds styling flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseFlags parses the command line (without the program name) and returns
// the positional arguments.
func parseFlags(args []string, usageOut io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("notepage", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &cliFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF render timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration as YAML and exit")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addHighlightFlags(fs, &f.highlight)
	addPDFFlags(fs, &f.pdf)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
