package pipeline

import (
	"regexp"
	"strings"
)

// Highlight region markers. Everything between them, markers included,
// is removed from pages that use no highlighted code.
const (
	HighlightBegin = "<!-- highlight:begin -->"
	HighlightEnd   = "<!-- highlight:end -->"
)

// tokenPattern matches {{{{NAME}}}} placeholders. Four braces keep them
// apart from the {{{ code delimiters of the source syntax.
var tokenPattern = regexp.MustCompile(`\{\{\{\{([A-Za-z_]+)\}\}\}\}`)

// highlightRegion matches the optional highlight region, across lines.
var highlightRegion = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(HighlightBegin) + `.*?` + regexp.QuoteMeta(HighlightEnd) + `\n?`)

// Substitute replaces {{{{NAME}}}} tokens with values[strings.ToUpper(NAME)].
// Token names are case-insensitive and values are inserted literally, so a
// value containing a token or backslashes is never expanded again.
// Unknown tokens are left untouched.
func Substitute(tmpl string, values map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		name := tokenPattern.FindStringSubmatch(tok)[1]
		if v, ok := values[strings.ToUpper(name)]; ok {
			return v
		}
		return tok
	})
}

// StripHighlightRegion removes every highlight region from a page.
func StripHighlightRegion(page string) string {
	return highlightRegion.ReplaceAllString(page, "")
}
