package markup

import (
	"regexp"
	"strings"
)

var (
	listItemPattern       = regexp.MustCompile(`^(\*\s+)(.*)$`)
	definitionItemPattern = regexp.MustCompile(`^(:\s*)(.*?)(\s*=\s*)(.*)$`)
)

// renderListItem renders "* text" as an <li>. ok is false when the line
// has no whitespace after the marker or nothing after it.
func renderListItem(raw string) (html string, ok bool) {
	m := listItemPattern.FindStringSubmatch(raw)
	if m == nil || m[2] == "" {
		return "", false
	}
	return "<li>" + Escape(m[2]) + "</li>", true
}

// renderDefinitionItem renders ": term = definition" as a <dt>/<dd> pair.
// The split happens at the first '='. Links are not recognized here.
func renderDefinitionItem(raw string) (html string, ok bool) {
	m := definitionItemPattern.FindStringSubmatch(raw)
	if m == nil || m[4] == "" {
		return "", false
	}
	return "<dt>" + Escape(m[2]) + "</dt>\n<dd>" + Escape(m[4]) + "</dd>", true
}

// renderImage renders "@ url [style...]". The first field after the marker
// is the source; the remaining fields form the inline style.
func renderImage(raw string) string {
	fields := strings.Fields(strings.TrimPrefix(raw, "@"))
	src := ""
	if len(fields) > 0 {
		src = fields[0]
		fields = fields[1:]
	}

	parts := []string{`<img src="` + escapeHTML(src) + `"`}
	if style := strings.Join(fields, " "); style != "" {
		parts = append(parts, `style="`+escapeHTML(style)+`"`)
	}
	parts = append(parts, "/>")
	return strings.Join(parts, " ")
}

// renderCodeLine escapes a code line without any inline processing.
func renderCodeLine(raw string) string {
	return escapeHTML(raw)
}

// codeClass returns the class attribute value for a tagged code block.
func codeClass(lang string) string {
	return "highlight language-" + lang
}
