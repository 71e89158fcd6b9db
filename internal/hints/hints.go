// Package hints suggests a next step for common CLI failures. Every hint is
// rendered as "\n  hint: <text>" so it can be appended to an error line.
package hints

import (
	"path/filepath"
	"strings"
)

// Probe reads the environment a hint depends on.
type Probe struct {
	Getenv     func(string) string
	FileExists func(string) bool
}

// inCI reports whether a known CI runner variable is set.
func (p Probe) inCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if p.Getenv(v) != "" {
			return true
		}
	}
	return false
}

func (p Probe) inContainer() bool {
	return p.FileExists != nil && p.FileExists("/.dockerenv")
}

// BrowserConnect explains how to point the PDF renderer at a working
// browser. Sandbox advice is only given in CI and containers.
func (p Probe) BrowserConnect() string {
	var parts []string
	if (p.inCI() || p.inContainer()) && p.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if p.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return render(parts...)
}

// Timeout suggests a longer PDF render timeout.
func Timeout() string {
	return render("for large notes, use --timeout flag")
}

// ConfigNotFound suggests --config, plus the first searched location under
// a notepage config directory as a place to create the file.
func ConfigNotFound(searched []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(filepath.ToSlash(p), "/notepage/") {
			hint += " or create " + p
			break
		}
	}
	return render(hint)
}

// OutputDir suggests checking the output location.
func OutputDir() string {
	return render("check parent directory exists and is writable")
}

// OutputCollision suggests writing pages somewhere else.
func OutputCollision() string {
	return render("use --output to write pages into a separate directory")
}

// Styles lists the styles that can be used instead.
func Styles(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return render("available: " + strings.Join(available, ", "))
}

// Icon describes an acceptable page icon.
func Icon() string {
	return render("use an http(s) or data: URL, or a path without spaces; set --icon-type to a media type like image/png")
}

// render joins parts into a single hint line, or "" without parts.
func render(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(parts, "; ")
}
