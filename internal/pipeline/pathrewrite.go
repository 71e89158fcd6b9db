package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-notepage/internal/dom"
)

// RewriteRelativePaths converts relative image and link paths under root to
// absolute file:// URLs, so a rendered note opened from a temp file (PDF
// export) still finds its images. An empty sourceDir is a no-op.
//
// Rewrites img[src] and a[href]. Fragment links ("#id") are never touched:
// they are in-page anchors handled by smooth scrolling.
func RewriteRelativePaths(root *html.Node, sourceDir string) error {
	if sourceDir == "" {
		return nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}

	dom.Walk(root, func(n *html.Node) bool {
		switch {
		case dom.IsElement(n, "img"):
			rewriteAttr(n, "src", absSourceDir)
		case dom.IsElement(n, "a"):
			rewriteAttr(n, "href", absSourceDir)
		}
		return true
	})
	return nil
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func rewriteAttr(n *html.Node, attrName, sourceDir string) {
	val, ok := dom.Attr(n, attrName)
	if !ok || !isRelativePath(val) {
		return
	}

	absPath := filepath.Join(sourceDir, val)

	// Leave paths escaping sourceDir as written.
	if !isPathUnderDir(absPath, sourceDir) {
		return
	}

	dom.SetAttr(n, attrName, pathToFileURL(absPath))
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:", "//", "#"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
