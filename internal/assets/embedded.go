package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed layouts/*.html
var layouts embed.FS

// EmbeddedLoader loads layouts from the embedded filesystem.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadLayout loads an embedded layout by name.
func (e *EmbeddedLoader) LoadLayout(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := layouts.ReadFile("layouts/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}

	return string(content), nil
}

// Names returns the sorted names of the embedded layouts.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(layouts, "layouts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".html"))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ LayoutLoader = (*EmbeddedLoader)(nil)
