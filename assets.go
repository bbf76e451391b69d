package spec2html

import (
	"errors"

	"github.com/alnah/go-spec2html/internal/assets"
)

// DefaultLayout is the name of the built-in page layout.
const DefaultLayout = assets.DefaultLayoutName

// LayoutLoader loads page layout templates by name.
// Implementations may read from the filesystem, embedded assets, a database, etc.
// LoadLayout returns an error wrapping ErrLayoutNotFound for unknown names.
type LayoutLoader interface {
	LoadLayout(name string) (string, error)
}

// NewLayoutLoader creates a LayoutLoader for the given base path.
// If basePath is empty, only the built-in layouts are available.
// Otherwise {basePath}/layouts/{name}.html takes precedence.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewLayoutLoader(basePath string) (LayoutLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &layoutLoaderAdapter{resolver: resolver}, nil
}

// BuiltinLayouts returns the names of the embedded layouts.
func BuiltinLayouts() []string {
	return assets.NewEmbeddedLoader().Names()
}

// layoutLoaderAdapter maps internal asset errors to public sentinels.
type layoutLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *layoutLoaderAdapter) LoadLayout(name string) (string, error) {
	content, err := a.resolver.LoadLayout(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public sentinels.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrLayoutNotFound),
		errors.Is(err, assets.ErrInvalidAssetName):
		return &assetError{sentinel: ErrLayoutNotFound, original: err}
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return &assetError{sentinel: ErrInvalidAssetPath, original: err}
	default:
		return err
	}
}

// assetError keeps the internal message while matching a public sentinel.
type assetError struct {
	sentinel error
	original error
}

func (e *assetError) Error() string {
	return e.original.Error()
}

func (e *assetError) Unwrap() error {
	return e.sentinel
}

var _ LayoutLoader = (*layoutLoaderAdapter)(nil)
