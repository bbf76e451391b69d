package markup

import (
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-spec2html/internal/pipeline"
)

// Default values for Document options.
const (
	DefaultHeadingBase     = 1
	DefaultTimestampLayout = "2006-01-02 15:04:05 -0700"
	NumericTimestampLayout = "2006-01-02 15:04:05"
)

// Highlighter renders the body of a language-tagged code block.
// ok is false when the language is unknown, in which case the block is
// emitted as escaped text.
type Highlighter interface {
	Highlight(lang, code string) (html string, ok bool)
}

type options struct {
	headingBase      int
	strictReferences bool
	highlighter      Highlighter
	logger           zerolog.Logger
	now              func() time.Time
	timestampLayout  string
}

// Option configures a Document.
type Option func(*options)

// WithHeadingBase sets the offset added to a heading depth to get the
// HTML heading level. The default of 1 renders "= Top" as <h2>.
func WithHeadingBase(base int) Option {
	return func(o *options) {
		o.headingBase = base
	}
}

// WithStrictReferences reports references matching more than one heading
// as errors instead of only listing every candidate.
func WithStrictReferences(strict bool) Option {
	return func(o *options) {
		o.strictReferences = strict
	}
}

// WithHighlighter renders tagged code blocks through h.
func WithHighlighter(h Highlighter) Option {
	return func(o *options) {
		o.highlighter = h
	}
}

// WithLogger sets the logger used for processing diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock sets the time source for the NOW tokens.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithTimestampLayout sets the Go time layout used for the NOW token.
func WithTimestampLayout(layout string) Option {
	return func(o *options) {
		o.timestampLayout = layout
	}
}

// Document holds the state of one processing run.
// A Document is not safe for concurrent use; Process resets it.
type Document struct {
	opts options

	content      []Fragment
	resolved     []string
	headings     []HeadingRecord
	toc          []string
	tocNoHeading []string

	title    string
	filename string
	now      time.Time
	errors   []string
	line     int

	state         BlockState
	current       []Fragment
	codeLang      string
	codeRaw       []string
	highlightUsed bool
}

// New creates a Document with the given options.
func New(opts ...Option) *Document {
	d := &Document{
		opts: options{
			headingBase:     DefaultHeadingBase,
			logger:          zerolog.Nop(),
			now:             time.Now,
			timestampLayout: DefaultTimestampLayout,
		},
	}
	for _, opt := range opts {
		opt(&d.opts)
	}
	d.reset("?")
	return d
}

// reset clears all per-run state.
func (d *Document) reset(filename string) {
	d.content = nil
	d.resolved = nil
	d.headings = nil
	d.toc = nil
	d.tocNoHeading = nil
	d.filename = filename
	d.title = "Unnamed spec (" + escapeHTML(filename) + ")"
	d.now = d.opts.now()
	d.errors = nil
	d.line = 0
	d.state = Empty
	d.current = nil
	d.codeLang = ""
	d.codeRaw = nil
	d.highlightUsed = false
}

// ProcessReader reads all lines from r and processes them. name is the
// source name used for FILENAME and the default title; only its base name
// is kept. The returned error is an I/O error; document errors are
// reported by Errors.
func (d *Document) ProcessReader(name string, r io.Reader) error {
	lines, err := pipeline.ReadLines(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	d.Process(name, slices.Values(lines))
	return nil
}

// Process runs the whole document through the compiler. Lines must not
// carry their trailing newline.
func (d *Document) Process(name string, lines iter.Seq[string]) {
	d.reset(filepath.Base(name))

	for raw := range lines {
		d.line++
		d.feed(raw)
	}
	d.flush()

	d.tocNoHeading = generateTOC(d.headings)
	d.toc = append([]string{tocBanner(d.opts.headingBase)}, d.tocNoHeading...)
	d.resolveReferences()

	d.opts.logger.Debug().
		Str("file", d.filename).
		Int("lines", d.line).
		Int("blocks", len(d.content)).
		Int("headings", len(d.headings)).
		Int("errors", len(d.errors)).
		Msg("document processed")
}

// feed classifies one line and applies it to the block state.
func (d *Document) feed(raw string) {
	c := Classify(d.state, raw, len(d.content) > 0)

	switch c.Kind {
	case Title:
		d.title = Escape(titlePrefixPattern.ReplaceAllString(raw, ""))
	case Heading:
		d.flush()
		d.content = append(d.content, literal(""))
		html, ok := d.renderHeading(raw)
		if !ok {
			d.errorf("BUG: Heading assertion failed (%d)", d.line)
		}
		d.content = append(d.content, literal(html))
	case ListItem:
		d.switchState(List)
		html, ok := renderListItem(raw)
		if !ok {
			d.errorf("BUG: List_item assertion failed (%d)", d.line)
		}
		d.current = append(d.current, literal(html))
	case DefinitionItem:
		d.switchState(DefinitionList)
		html, ok := renderDefinitionItem(raw)
		if !ok {
			d.errorf("BUG: Def_list_item assertion failed (%d)", d.line)
		}
		d.current = append(d.current, literal(html))
	case End:
		d.flush()
	case Text:
		d.switchState(Paragraph)
		d.current = append(d.current, RenderText(raw, d.line))
	case CodeLine:
		if d.switchState(Code) {
			d.codeLang = c.Lang
			return
		}
		d.codeRaw = append(d.codeRaw, raw)
		d.current = append(d.current, literal(renderCodeLine(raw)))
	case Image:
		d.switchState(Paragraph)
		d.current = append(d.current, literal(renderImage(raw)))
	case Comment:
	default:
		d.errorf("Something weird at line: %d", d.line)
	}
}

// switchState flushes the open block and enters st unless st is already
// the current state. It reports whether a switch happened.
func (d *Document) switchState(st BlockState) bool {
	if d.state == st {
		return false
	}
	d.flush()
	d.state = st
	return true
}

// flush closes the open block and appends it to the content.
func (d *Document) flush() {
	switch d.state {
	case Empty:
	case Paragraph:
		d.content = append(d.content, joinFragments("<p>\n", d.current, "\n", "\n</p>"))
	case List:
		d.content = append(d.content, joinFragments("<ul>\n", d.current, "\n", "\n</ul>"))
	case DefinitionList:
		d.content = append(d.content, joinFragments("<dl>\n", d.current, "\n", "\n</dl>"))
	case Code:
		d.content = append(d.content, d.codeBlock())
	default:
		d.errorf("Some weird state encountered around line: %d", d.line)
	}

	if d.state != Empty {
		d.opts.logger.Trace().
			Stringer("block", d.state).
			Int("lines", len(d.current)).
			Int("line", d.line).
			Msg("block flushed")
	}

	d.current = nil
	d.codeRaw = nil
	d.codeLang = ""
	d.state = Empty
}

// codeBlock wraps the buffered code lines in a <pre>. A language tag adds
// the highlight class and marks the document as using highlighting.
func (d *Document) codeBlock() Fragment {
	if d.codeLang == "" {
		return joinFragments("<pre>\n", d.current, "\n", "\n</pre>")
	}

	d.highlightUsed = true
	open := `<pre class="` + escapeHTML(codeClass(d.codeLang)) + `">` + "\n"

	if d.opts.highlighter != nil {
		if html, ok := d.opts.highlighter.Highlight(d.codeLang, strings.Join(d.codeRaw, "\n")); ok {
			return literal(open + html + "\n</pre>")
		}
		d.opts.logger.Debug().
			Str("lang", d.codeLang).
			Int("line", d.line).
			Msg("no highlighter for language, emitting plain code")
	}
	return joinFragments(open, d.current, "\n", "\n</pre>")
}

// errorf records a document error.
func (d *Document) errorf(format string, args ...any) {
	d.errors = append(d.errors, fmt.Sprintf(format, args...))
}

// OK reports whether processing produced no errors.
func (d *Document) OK() bool {
	return len(d.errors) == 0
}

// Errors returns a copy of the collected errors.
func (d *Document) Errors() []string {
	return slices.Clone(d.errors)
}

// Title returns the escaped document title.
func (d *Document) Title() string {
	return d.title
}

// Filename returns the base name of the processed source.
func (d *Document) Filename() string {
	return d.filename
}

// Content returns the rendered content blocks.
func (d *Document) Content() []string {
	return slices.Clone(d.resolved)
}

// TOC returns the table of contents lines including the banner heading.
func (d *Document) TOC() []string {
	return slices.Clone(d.toc)
}

// TOCNoHeading returns the table of contents lines without the banner.
func (d *Document) TOCNoHeading() []string {
	return slices.Clone(d.tocNoHeading)
}

// Headings returns the document outline in document order.
func (d *Document) Headings() []HeadingRecord {
	return slices.Clone(d.headings)
}

// HighlightUsed reports whether any code block carried a language tag.
func (d *Document) HighlightUsed() bool {
	return d.highlightUsed
}

// Values returns the template token values for the processed document.
func (d *Document) Values() map[string]string {
	return map[string]string{
		"CONTENT":        strings.Join(d.resolved, "\n"),
		"TOC":            strings.Join(d.toc, "\n"),
		"TOC_NO_HEADING": strings.Join(d.tocNoHeading, "\n"),
		"TITLE":          d.title,
		"NOW":            escapeHTML(d.now.Format(d.opts.timestampLayout)),
		"NOW_NUMERIC":    escapeHTML(d.now.Format(NumericTimestampLayout)),
		"FILENAME":       escapeHTML(d.filename),
	}
}

// Render substitutes the document into a layout template. extra adds or
// overrides token values. The optional highlight region of the template
// is kept only when a code block asked for highlighting.
func (d *Document) Render(tmpl string, extra map[string]string) string {
	values := d.Values()
	for k, v := range extra {
		values[strings.ToUpper(k)] = v
	}
	if !d.highlightUsed {
		tmpl = pipeline.StripHighlightRegion(tmpl)
	}
	return pipeline.Substitute(tmpl, values)
}
