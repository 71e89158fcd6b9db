package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css
var builtinStyles embed.FS

// Builtin serves the styles compiled into the binary.
type Builtin struct{}

// Style returns a built-in style.
func (Builtin) Style(name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	css, err := builtinStyles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(css), nil
}

// StyleNames lists the built-in style names, sorted.
func StyleNames() []string {
	return cssNames(fs.ReadDir(builtinStyles, "styles"))
}

// cssNames returns the sorted base names of the .css entries.
func cssNames(entries []fs.DirEntry, err error) []string {
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".css") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}
