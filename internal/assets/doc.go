// Package assets provides the HTML layouts pages are rendered into.
//
// # Loader Architecture
//
//	LayoutLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - layouts compiled into the binary
//	    ├── FilesystemLoader  - layouts from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// # Directory Structure
//
//	{basePath}/
//	└── layouts/
//	    └── {name}.html
//
// A layout is an HTML page with {{{{NAME}}}} tokens (CONTENT, TOC,
// TOC_NO_HEADING, TITLE, NOW, NOW_NUMERIC, FILENAME, HIGHLIGHT_CSS,
// GENERATOR) and an optional region between <!-- highlight:begin --> and
// <!-- highlight:end --> that is dropped when no code block is highlighted.
//
// # Security
//
// Layout names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
