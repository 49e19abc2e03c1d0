// Package assets provides the embedded stylesheets shipped with mdbundle.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed styles/*.css
var stylesFS embed.FS

// DefaultStyle is the stylesheet applied when none is configured.
const DefaultStyle = "document"

// ErrStyleNotFound indicates the requested style is not embedded.
var ErrStyleNotFound = errors.New("style not found")

// LoadStyle returns the CSS content of an embedded style by name.
func LoadStyle(name string) (string, error) {
	data, err := stylesFS.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrStyleNotFound, name, strings.Join(Styles(), ", "))
	}
	return string(data), nil
}

// Styles lists the embedded style names, sorted.
func Styles() []string {
	entries, err := stylesFS.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}
