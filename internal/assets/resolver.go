package assets

import "errors"

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the layout is not found in the custom location.
type AssetResolver struct {
	custom   LayoutLoader // nil if no custom path configured
	embedded LayoutLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded layouts are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadLayout loads a layout, trying the custom loader first if available.
// Only "not found" errors fall back; validation and I/O errors are returned.
func (r *AssetResolver) LoadLayout(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadLayout(name)
	}

	content, err := r.custom.LoadLayout(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrLayoutNotFound) {
		return "", err
	}

	return r.embedded.LoadLayout(name)
}

// Compile-time interface check.
var _ LayoutLoader = (*AssetResolver)(nil)
