package spec2html

import (
	"time"

	"github.com/rs/zerolog"
)

// Input is a single document to convert.
type Input struct {
	// Name identifies the source, usually its path. Only the base name is
	// used, for the FILENAME token and the default title.
	Name string

	// Source is the document text. Line endings are normalized.
	Source string

	// Layout overrides the converter layout for this conversion when set.
	// It is template content, not a name or path.
	Layout string

	// PDF also renders the page to PDF through headless Chrome.
	PDF bool

	// BaseDir is the directory relative image and link paths resolve
	// against in the PDF. Usually the directory of the source file.
	// Empty leaves them as written.
	BaseDir string
}

// Heading is one entry of the document outline.
type Heading struct {
	Depth int    // number of leading '='
	Text  string // heading text as written
	ID    string // anchor name used by the TOC and references
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML          []byte    // rendered page
	PDF           []byte    // nil unless Input.PDF was set
	Title         string    // escaped document title
	Headings      []Heading // outline in document order
	Diagnostics   []string  // document errors, empty on success
	HighlightUsed bool      // some code block carried a language tag
}

// OK reports whether the document converted without diagnostics.
func (r *ConvertResult) OK() bool {
	return r != nil && len(r.Diagnostics) == 0
}

// Highlight modes.
const (
	HighlightClient = "client"
	HighlightServer = "server"
)

// Defaults.
const (
	DefaultHeadingBase = 1
	DefaultGenerator   = "go-spec2html"
	defaultTimeout     = 30 * time.Second
	defaultSourceName  = "untitled"
)

// converterConfig holds the settings applied by options.
type converterConfig struct {
	layoutInput     string // layout name or path
	headingBase     int
	strictRefs      bool
	highlightMode   string
	highlightStyle  string
	logger          zerolog.Logger
	timeout         time.Duration
	now             func() time.Time
	assetPath       string
	timestampFormat string
	generator       string
}

// Option configures a Converter.
type Option func(*Converter)

// WithLayout selects the page layout by built-in name or file path.
// A value containing a path separator is read from disk.
func WithLayout(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.layoutInput = nameOrPath
	}
}

// WithLayoutLoader sets a custom layout loader, replacing the built-in
// layouts and any WithAssetPath directory.
func WithLayoutLoader(l LayoutLoader) Option {
	return func(c *Converter) {
		c.layoutLoader = l
	}
}

// WithHeadingBase sets the number added to a heading depth to get its HTML
// level. Must be between 0 and 5.
func WithHeadingBase(base int) Option {
	return func(c *Converter) {
		c.cfg.headingBase = base
	}
}

// WithStrictReferences makes references matching several headings errors.
func WithStrictReferences(strict bool) Option {
	return func(c *Converter) {
		c.cfg.strictRefs = strict
	}
}

// WithHighlightMode selects client or server side code highlighting.
func WithHighlightMode(mode string) Option {
	return func(c *Converter) {
		c.cfg.highlightMode = mode
	}
}

// WithHighlightStyle selects the chroma style for server side highlighting.
func WithHighlightStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}

// WithLogger sets the logger for conversion diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithTimeout sets the PDF rendering timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithClock sets the time source for the NOW tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// WithAssetPath adds a directory of custom layouts ({path}/layouts/{name}.html)
// searched before the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTimestampFormat sets the NOW token format, as a preset name
// ("iso", "classic", ...) or date tokens like "YYYY-MM-DD HH:mm".
func WithTimestampFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.timestampFormat = format
	}
}

// WithGenerator sets the GENERATOR token value.
func WithGenerator(name string) Option {
	return func(c *Converter) {
		c.cfg.generator = name
	}
}
