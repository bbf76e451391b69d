package assets

// LayoutLoader defines the contract for loading page layouts.
// Implementations may load from embedded assets, filesystem, database, etc.
type LayoutLoader interface {
	// LoadLayout loads a layout by name (without .html extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLayout(name string) (string, error)
}
