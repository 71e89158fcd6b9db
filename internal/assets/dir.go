package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir serves styles stored as <root>/styles/<name>.css.
type Dir struct {
	root string // absolute, symlinks resolved
}

// OpenDir validates root and returns a Dir for it.
func OpenDir(root string) (*Dir, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidDir)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidDir, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDir, abs)
	}

	return &Dir{root: abs}, nil
}

// Style reads a style file. A file that resolves outside the directory,
// through a symlink for instance, is refused.
func (d *Dir) Style(name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}

	path := filepath.Join(d.root, "styles", name+".css")
	if resolved, err := filepath.EvalSymlinks(path); err == nil &&
		!strings.HasPrefix(resolved, d.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideDir, path)
	}

	css, err := os.ReadFile(path) // #nosec G304 -- name checked, path contained
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %q in %s", ErrStyleNotFound, name, d.root)
	}
	if err != nil {
		return "", fmt.Errorf("reading style %q: %w", name, err)
	}
	return string(css), nil
}

// Names lists the styles found in the directory.
func (d *Dir) Names() []string {
	return cssNames(os.ReadDir(filepath.Join(d.root, "styles")))
}
