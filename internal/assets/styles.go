package assets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultStyleName is the style applied when none is configured.
const DefaultStyleName = "default"

var (
	ErrStyleNotFound = errors.New("style not found")
	ErrInvalidName   = errors.New("invalid style name")
	ErrInvalidDir    = errors.New("invalid style directory")
	ErrOutsideDir    = errors.New("style resolves outside its directory")
)

// StyleSource returns page CSS by style name, without the .css extension.
// A source that lacks the style returns an error wrapping ErrStyleNotFound.
type StyleSource interface {
	Style(name string) (string, error)
}

// CheckName rejects style names that are empty or could address another
// file: anything with a path separator or a dot.
func CheckName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Catalog looks styles up in a custom directory first, then in the styles
// built into the binary.
type Catalog struct {
	dir *Dir // nil without a custom directory
}

// Open returns the catalog for customDir. An empty customDir serves the
// built-in styles only.
func Open(customDir string) (*Catalog, error) {
	if customDir == "" {
		return &Catalog{}, nil
	}
	dir, err := OpenDir(customDir)
	if err != nil {
		return nil, err
	}
	return &Catalog{dir: dir}, nil
}

// Style returns the named style. Only a missing custom style falls through
// to the built-in one; other custom errors are returned as is.
func (c *Catalog) Style(name string) (string, error) {
	if c.dir != nil {
		css, err := c.dir.Style(name)
		if !errors.Is(err, ErrStyleNotFound) {
			return css, err
		}
	}
	return Builtin{}.Style(name)
}

// Names lists every style the catalog can serve, sorted and deduplicated.
func (c *Catalog) Names() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(list []string) {
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	add(StyleNames())
	if c.dir != nil {
		add(c.dir.Names())
	}
	sort.Strings(names)
	return names
}

var (
	_ StyleSource = (*Catalog)(nil)
	_ StyleSource = Builtin{}
	_ StyleSource = (*Dir)(nil)
)
