package assets

// DefaultLayoutName is the name of the built-in layout.
const DefaultLayoutName = "default"
