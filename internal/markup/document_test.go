package markup

// Notes:
// - Scenario tests mirror the documented behaviors: title and paragraph,
//   heading hierarchy, list blocks, code blocks with a language tag.
// - Render is tested with small inline templates; the real page layouts
//   live in internal/assets.

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var fixedTime = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestProcess_TitleAndParagraph(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"! My Doc", "", "Hello world."})

	if d.Title() != "My Doc" {
		t.Errorf("Title() = %q, want My Doc", d.Title())
	}
	if got := d.Content(); !slices.Equal(got, []string{"<p>\nHello world.\n</p>"}) {
		t.Errorf("Content() = %q", got)
	}
	if !d.OK() {
		t.Errorf("Errors() = %q", d.Errors())
	}
}

func TestProcess_HeadingHierarchy(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"= Top", "== Sub A", "== Sub B"})
	h := d.Headings()

	var depths []int
	for _, rec := range h {
		depths = append(depths, rec.Depth)
	}
	if !slices.Equal(depths, []int{1, 2, 2}) {
		t.Fatalf("depths = %v, want [1 2 2]", depths)
	}

	wantTOC := []string{
		"<h2>Table of contents</h2>",
		"<ul>",
		` <li><a href="#` + h[0].ID + `">Top</a></li>`,
		` <li style="list-style-type: none;"><ul>`,
		`  <li><a href="#` + h[1].ID + `">Sub A</a></li>`,
		`  <li><a href="#` + h[2].ID + `">Sub B</a></li>`,
		" </ul></li>",
		"</ul>",
	}
	if got := d.TOC(); !slices.Equal(got, wantTOC) {
		t.Errorf("TOC() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(wantTOC, "\n"))
	}
	if got := d.TOCNoHeading(); !slices.Equal(got, wantTOC[1:]) {
		t.Errorf("TOCNoHeading() = %q", got)
	}

	wantContent := []string{
		"", "<h2><a name='" + h[0].ID + "'></a>Top</h2>",
		"", "<h3><a name='" + h[1].ID + "'></a>Sub A</h3>",
		"", "<h3><a name='" + h[2].ID + "'></a>Sub B</h3>",
	}
	if got := d.Content(); !slices.Equal(got, wantContent) {
		t.Errorf("Content() = %q, want %q", got, wantContent)
	}
}

func TestProcess_ListBlock(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"* one", "* t<w>o", ""})

	want := []string{"<ul>\n<li>one</li>\n<li>t&lt;w&gt;o</li>\n</ul>"}
	if got := d.Content(); !slices.Equal(got, want) {
		t.Errorf("Content() = %q, want %q", got, want)
	}
}

func TestProcess_CodeBlockWithLanguage(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"{{{ruby", "puts 1", "}}}"})

	want := []string{"<pre class=\"highlight language-ruby\">\nputs 1\n</pre>"}
	if got := d.Content(); !slices.Equal(got, want) {
		t.Errorf("Content() = %q, want %q", got, want)
	}
	if !d.HighlightUsed() {
		t.Error("HighlightUsed() = false, want true")
	}
}

func TestProcess_BlankLinesOnly(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"", "   ", "\t", ""})

	if got := d.Content(); len(got) != 0 {
		t.Errorf("Content() = %q, want empty", got)
	}
	if !d.OK() {
		t.Errorf("Errors() = %q", d.Errors())
	}
}

func TestProcess_HeadingIDsAreStable(t *testing.T) {
	t.Parallel()

	lines := []string{"= A", "== B", "= A"}

	first := process(t, lines).Headings()
	d := New(WithClock(time.Now))
	d.Process("other.spec", slices.Values(lines))
	d.Process("other.spec", slices.Values(lines))
	second := d.Headings()

	if !slices.Equal(first, second) {
		t.Errorf("headings differ between runs:\n%v\n%v", first, second)
	}
	if first[0].ID == first[2].ID {
		t.Error("repeated heading text should get distinct ids")
	}
}

// ---------------------------------------------------------------------------
// Block transitions
// ---------------------------------------------------------------------------

func TestProcess_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "paragraph lines joined",
			lines: []string{"a", "b"},
			want:  []string{"<p>\na\nb\n</p>"},
		},
		{
			name:  "kind change flushes without blank line",
			lines: []string{"text", "* item", ": t = d"},
			want:  []string{"<p>\ntext\n</p>", "<ul>\n<li>item</li>\n</ul>", "<dl>\n<dt>t</dt>\n<dd>d</dd>\n</dl>"},
		},
		{
			name:  "definition list",
			lines: []string{": a = b", ": c = d"},
			want:  []string{"<dl>\n<dt>a</dt>\n<dd>b</dd>\n<dt>c</dt>\n<dd>d</dd>\n</dl>"},
		},
		{
			name:  "image joins paragraph",
			lines: []string{"text", "@ pic.png"},
			want:  []string{"<p>\ntext\n<img src=\"pic.png\" />\n</p>"},
		},
		{
			name:  "comment is dropped and keeps the block open",
			lines: []string{"a", "# hidden", "b"},
			want:  []string{"<p>\na\nb\n</p>"},
		},
		{
			name:  "plain code block is verbatim",
			lines: []string{"{{{", "= x < y", "", "}}}"},
			want:  []string{"<pre>\n= x &lt; y\n\n</pre>"},
		},
		{
			name:  "code block opened mid paragraph",
			lines: []string{"intro", "{{{", "x", "}}}", "after"},
			want:  []string{"<p>\nintro\n</p>", "<pre>\nx\n</pre>", "<p>\nafter\n</p>"},
		},
		{
			name:  "unclosed code block flushed at end",
			lines: []string{"{{{go", "x := 1"},
			want:  []string{"<pre class=\"highlight language-go\">\nx := 1\n</pre>"},
		},
		{
			name:  "title after content is a paragraph",
			lines: []string{"text", "", "! Late"},
			want:  []string{"<p>\ntext\n</p>", "<p>\n! Late\n</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := process(t, tt.lines)
			if got := d.Content(); !slices.Equal(got, tt.want) {
				t.Errorf("Content() =\n%q\nwant\n%q", got, tt.want)
			}
			if !d.OK() {
				t.Errorf("Errors() = %q", d.Errors())
			}
		})
	}
}

func TestProcess_StructuralErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"heading", []string{"ok", "=bad"}, []string{"BUG: Heading assertion failed (2)"}},
		{"list item", []string{"*bad"}, []string{"BUG: List_item assertion failed (1)"}},
		{"definition item", []string{"", "", ": no equals"}, []string{"BUG: Def_list_item assertion failed (3)"}},
		{"processing continues", []string{"*x", "*y", "fine"}, []string{
			"BUG: List_item assertion failed (1)",
			"BUG: List_item assertion failed (2)",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := process(t, tt.lines)
			if got := d.Errors(); !slices.Equal(got, tt.want) {
				t.Errorf("Errors() = %q, want %q", got, tt.want)
			}
			if d.OK() {
				t.Error("OK() = true, want false")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Driver behavior
// ---------------------------------------------------------------------------

func TestProcess_DefaultTitleAndFilename(t *testing.T) {
	t.Parallel()

	d := New()
	d.Process("dir/sub/a<b>.spec", slices.Values([]string{"text"}))

	if d.Filename() != "a<b>.spec" {
		t.Errorf("Filename() = %q", d.Filename())
	}
	if d.Title() != "Unnamed spec (a&lt;b&gt;.spec)" {
		t.Errorf("Title() = %q", d.Title())
	}
}

func TestProcess_ResetsBetweenRuns(t *testing.T) {
	t.Parallel()

	d := New()
	d.Process("a.spec", slices.Values([]string{"! First", "*bad", "{{{go", "x"}))
	d.Process("b.spec", slices.Values([]string{"clean"}))

	if !d.OK() {
		t.Errorf("errors leaked across runs: %q", d.Errors())
	}
	if d.Title() != "Unnamed spec (b.spec)" {
		t.Errorf("Title() = %q, title leaked across runs", d.Title())
	}
	if d.HighlightUsed() {
		t.Error("highlight flag leaked across runs")
	}
	if got := d.Content(); !slices.Equal(got, []string{"<p>\nclean\n</p>"}) {
		t.Errorf("Content() = %q", got)
	}
}

func TestProcess_ErrorsReturnsCopy(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"*bad"})
	errs := d.Errors()
	errs[0] = "changed"

	if d.Errors()[0] == "changed" {
		t.Error("Errors() must return a copy")
	}
}

func TestProcessReader(t *testing.T) {
	t.Parallel()

	d := New()
	if err := d.ProcessReader("r.spec", strings.NewReader("! T\r\n\r\nline one\rline two\n")); err != nil {
		t.Fatalf("ProcessReader() error = %v", err)
	}

	if d.Title() != "T" {
		t.Errorf("Title() = %q", d.Title())
	}
	if got := d.Content(); !slices.Equal(got, []string{"<p>\nline one\nline two\n</p>"}) {
		t.Errorf("Content() = %q", got)
	}
}

func TestWithHeadingBase(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"= Top"}, WithHeadingBase(0))

	if !strings.HasPrefix(d.Content()[1], "<h1><a name='") {
		t.Errorf("Content()[1] = %q, want <h1>", d.Content()[1])
	}
	if d.TOC()[0] != "<h1>Table of contents</h1>" {
		t.Errorf("TOC()[0] = %q", d.TOC()[0])
	}
}

// ---------------------------------------------------------------------------
// Highlighter
// ---------------------------------------------------------------------------

type fakeHighlighter struct {
	calls []string
}

func (f *fakeHighlighter) Highlight(lang, code string) (string, bool) {
	f.calls = append(f.calls, lang+":"+code)
	if lang != "go" {
		return "", false
	}
	return "<span>HL</span>", true
}

func TestWithHighlighter(t *testing.T) {
	t.Parallel()

	h := &fakeHighlighter{}
	d := process(t, []string{"{{{go", "a < b", "c", "}}}", "", "{{{cobol", "x", "}}}", "", "{{{", "y", "}}}"}, WithHighlighter(h))

	want := []string{
		"<pre class=\"highlight language-go\">\n<span>HL</span>\n</pre>",
		"<pre class=\"highlight language-cobol\">\nx\n</pre>",
		"<pre>\ny\n</pre>",
	}
	if got := d.Content(); !slices.Equal(got, want) {
		t.Errorf("Content() =\n%q\nwant\n%q", got, want)
	}
	if !slices.Equal(h.calls, []string{"go:a < b\nc", "cobol:x"}) {
		t.Errorf("highlighter calls = %q", h.calls)
	}
}

// ---------------------------------------------------------------------------
// Values and Render
// ---------------------------------------------------------------------------

func TestRender_Tokens(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"! My Doc", "", "text"})
	tmpl := "{{{{title}}}}|{{{{FILENAME}}}}|{{{{NOW}}}}|{{{{Now_Numeric}}}}|{{{{UNKNOWN}}}}|{{{CONTENT}}}"

	want := "My Doc|doc.spec|2024-01-02 03:04:05 +0000|2024-01-02 03:04:05|{{{{UNKNOWN}}}}|{{{CONTENT}}}"
	if got := d.Render(tmpl, nil); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_ContentAndTOC(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"= H", "", "body"})
	id := d.Headings()[0].ID

	got := d.Render("{{{{CONTENT}}}}\n--\n{{{{TOC_NO_HEADING}}}}", nil)
	want := "\n<h2><a name='" + id + "'></a>H</h2>\n<p>\nbody\n</p>\n--\n<ul>\n <li><a href=\"#" + id + "\">H</a></li>\n</ul>"
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
	if !strings.HasPrefix(d.Render("{{{{TOC}}}}", nil), "<h2>Table of contents</h2>\n<ul>") {
		t.Error("TOC token should start with the banner")
	}
}

func TestRender_ValuesInsertedLiterally(t *testing.T) {
	t.Parallel()

	d := process(t, []string{`! {{{{FILENAME}}}} \1 $1`, "", `a\b`})

	if got := d.Render("{{{{TITLE}}}}", nil); got != `{{{{FILENAME}}}} \1 $1` {
		t.Errorf("title rendered as %q", got)
	}
	if got := d.Render("{{{{CONTENT}}}}", nil); got != "<p>\na\\b\n</p>" {
		t.Errorf("content rendered as %q", got)
	}
}

func TestRender_HighlightRegion(t *testing.T) {
	t.Parallel()

	tmpl := "a\n<!-- highlight:begin -->\n<script>{{{{HIGHLIGHT_CSS}}}}</script>\n<!-- highlight:end -->\nb"

	plain := process(t, []string{"text"})
	if got := plain.Render(tmpl, map[string]string{"HIGHLIGHT_CSS": "css"}); got != "a\nb" {
		t.Errorf("without highlighting Render() = %q, want region removed", got)
	}

	tagged := process(t, []string{"{{{go", "x", "}}}"})
	got := tagged.Render(tmpl, map[string]string{"highlight_css": "css"})
	if !strings.Contains(got, "<script>css</script>") || !strings.Contains(got, "<!-- highlight:begin -->") {
		t.Errorf("with highlighting Render() = %q, want region kept", got)
	}
}

func TestRender_ExtraOverrides(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"! Real"})
	if got := d.Render("{{{{GENERATOR}}}} {{{{TITLE}}}}", map[string]string{"generator": "gen", "TITLE": "Fake"}); got != "gen Fake" {
		t.Errorf("Render() = %q, want %q", got, "gen Fake")
	}
}

func TestWithTimestampLayout(t *testing.T) {
	t.Parallel()

	d := process(t, []string{"x"}, WithTimestampLayout("02/01/2006"))
	values := d.Values()

	if values["NOW"] != "02/01/2024" {
		t.Errorf("NOW = %q, want 02/01/2024", values["NOW"])
	}
	if values["NOW_NUMERIC"] != "2024-01-02 03:04:05" {
		t.Errorf("NOW_NUMERIC = %q", values["NOW_NUMERIC"])
	}
}

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)

	process(t, []string{"= Intro A", "= Intro B", "", "x<#Intro> y<#None>"}, WithLogger(logger))

	out := buf.String()
	for _, want := range []string{"block flushed", "ambiguous reference", "undefined reference", "document processed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
