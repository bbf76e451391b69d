package spec2html

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-spec2html/internal/dateutil"
	"github.com/alnah/go-spec2html/internal/fileutil"
	"github.com/alnah/go-spec2html/internal/highlight"
	"github.com/alnah/go-spec2html/internal/markup"
	"github.com/alnah/go-spec2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ markup.Highlighter = (*highlight.Chroma)(nil)
	_ pdfConverter       = (*rodConverter)(nil)
	_ pdfRenderer        = (*rodRenderer)(nil)
)

// Converter compiles documents into HTML pages and, on request, PDF.
// Create with NewConverter, use Convert for each document, and Close when done.
//
// Conversions share the PDF browser, so a Converter must not be used by
// several goroutines at once.
type Converter struct {
	cfg          converterConfig
	layoutLoader LayoutLoader
	layout       string
	docOpts      []markup.Option
	highlightCSS string
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Returns an error if an option is invalid or the layout cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			headingBase:   DefaultHeadingBase,
			highlightMode: HighlightClient,
			logger:        zerolog.Nop(),
			timeout:       defaultTimeout,
			now:           time.Now,
			generator:     DefaultGenerator,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.headingBase < 0 || c.cfg.headingBase > 5 {
		return nil, fmt.Errorf("%w: %d (must be between 0 and 5)", ErrInvalidHeadingBase, c.cfg.headingBase)
	}

	if c.layoutLoader == nil {
		loader, err := NewLayoutLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.layoutLoader = loader
	}

	if err := c.resolveLayout(); err != nil {
		return nil, err
	}

	timestampLayout, err := dateutil.Layout(c.cfg.timestampFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	c.docOpts = []markup.Option{
		markup.WithHeadingBase(c.cfg.headingBase),
		markup.WithStrictReferences(c.cfg.strictRefs),
		markup.WithLogger(c.cfg.logger),
		markup.WithClock(c.cfg.now),
		markup.WithTimestampLayout(timestampLayout),
	}

	if err := c.setupHighlighting(); err != nil {
		return nil, err
	}

	// Tests inject a fake before this point.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.cfg.logger)
	}

	return c, nil
}

// resolveLayout loads the converter layout: a file when the input looks like
// a path, a loader name otherwise, the built-in default when empty.
func (c *Converter) resolveLayout() error {
	input := c.cfg.layoutInput
	if input == "" {
		input = DefaultLayout
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrLayoutNotFound, input)
			}
			return fmt.Errorf("loading layout file %q: %w", input, err)
		}
		c.layout = string(content)
		return nil
	}

	content, err := c.layoutLoader.LoadLayout(input)
	if err != nil {
		return fmt.Errorf("loading layout %q: %w", input, err)
	}
	c.layout = content
	return nil
}

// setupHighlighting validates the highlight mode and style. Server mode
// renders tagged code blocks with chroma and provides HIGHLIGHT_CSS.
func (c *Converter) setupHighlighting() error {
	mode, err := highlight.ParseMode(c.cfg.highlightMode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHighlightMode, err)
	}
	if mode != highlight.ModeServer {
		return nil
	}

	h, err := highlight.New(c.cfg.highlightStyle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHighlightStyle, err)
	}
	css, err := h.CSS()
	if err != nil {
		return err
	}

	c.highlightCSS = css
	c.docOpts = append(c.docOpts, markup.WithHighlighter(h))
	return nil
}

// Convert compiles input into a page and, if input.PDF is set, a PDF.
//
// The result is returned even when the document has errors, so callers can
// inspect Diagnostics; the error then wraps ErrDocumentInvalid and no page
// is rendered. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if int64(len(input.Source)) > pipeline.MaxSourceSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrSourceTooLarge, len(input.Source), pipeline.MaxSourceSize)
	}

	name := input.Name
	if name == "" {
		name = defaultSourceName
	}

	start := time.Now()
	doc := markup.New(c.docOpts...)
	doc.Process(name, slices.Values(pipeline.SplitLines(input.Source)))

	res := &ConvertResult{
		Title:         doc.Title(),
		Headings:      toHeadings(doc.Headings()),
		Diagnostics:   doc.Errors(),
		HighlightUsed: doc.HighlightUsed(),
	}
	if !doc.OK() {
		return res, &DiagnosticsError{Name: doc.Filename(), Diagnostics: res.Diagnostics}
	}

	layout := c.layout
	if input.Layout != "" {
		layout = input.Layout
	}
	res.HTML = []byte(doc.Render(layout, c.extraTokens(doc)))

	c.cfg.logger.Debug().
		Str("file", doc.Filename()).
		Int("bytes", len(res.HTML)).
		Dur("elapsed", time.Since(start)).
		Msg("page rendered")

	if !input.PDF {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := pipeline.ResolveRelativePaths(string(res.HTML), input.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving relative paths: %w", err)
	}
	pdf, err := c.pdfConverter.ToPDF(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// extraTokens returns the tokens the converter adds to the document's own.
func (c *Converter) extraTokens(doc *markup.Document) map[string]string {
	css := ""
	if doc.HighlightUsed() {
		css = c.highlightCSS
	}
	return map[string]string{
		"GENERATOR":     c.cfg.generator,
		"HIGHLIGHT_CSS": css,
	}
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// toHeadings converts the internal outline to the public type.
func toHeadings(records []markup.HeadingRecord) []Heading {
	if len(records) == 0 {
		return nil
	}
	out := make([]Heading, len(records))
	for i, r := range records {
		out[i] = Heading(r)
	}
	return out
}
