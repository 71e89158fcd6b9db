package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notepage [flags] <input>")
	fmt.Fprintln(w, "       notepage doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn Markdown or HTML notes into enhanced pages: titled, with an icon,")
	fmt.Fprintln(w, "highlighted and numbered code blocks with copy buttons, typeset math and")
	fmt.Fprintln(w, "smooth in-page links.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .md/.html file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           PDF render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --title <s>             Page title (\"\" = first h1)")
	fmt.Fprintln(w, "      --icon <url>            Page icon URL or path")
	fmt.Fprintln(w, "      --icon-type <s>         Icon media type (\"\" = from extension)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code:")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style name (default: github)")
	fmt.Fprintln(w, "      --no-line-numbers       Disable line numbers")
	fmt.Fprintln(w, "      --copy-label <s>        Copy button text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                   Also render a PDF")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>             CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing and debug logs")
	fmt.Fprintln(w, "      --log-format <s>        Log format: console, json")
	fmt.Fprintln(w, "      --print-config          Print the effective configuration and exit")
	fmt.Fprintln(w, "      --version               Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NOTEPAGE_CONFIG, NOTEPAGE_STYLE, NOTEPAGE_HIGHLIGHT_STYLE, NOTEPAGE_TIMEOUT,")
	fmt.Fprintln(w, "  NOTEPAGE_INPUT_DIR, NOTEPAGE_OUTPUT_DIR, NOTEPAGE_ICON, NOTEPAGE_PAGE_SIZE,")
	fmt.Fprintln(w, "  NOTEPAGE_WORKERS, NOTEPAGE_LOG_LEVEL, NOTEPAGE_LOG_FORMAT")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}
