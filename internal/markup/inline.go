package markup

import (
	"regexp"
	"strings"
)

// Reference is a same-document link waiting for the heading outline.
// Label is already escaped HTML; Key is the raw lookup text.
type Reference struct {
	Label string
	Key   string
	Line  int
}

// Segment is either literal HTML or a pending reference, never both.
type Segment struct {
	HTML string
	Ref  *Reference
}

// Fragment is rendered output that may still contain pending references.
type Fragment []Segment

// literal wraps finished HTML in a Fragment.
func literal(s string) Fragment {
	return Fragment{{HTML: s}}
}

// String renders the fragment with references shown as their labels.
// Used for logging and for fragments known to hold no references.
func (f Fragment) String() string {
	var b strings.Builder
	for _, seg := range f {
		if seg.Ref != nil {
			b.WriteString(seg.Ref.Label)
			continue
		}
		b.WriteString(seg.HTML)
	}
	return b.String()
}

// joinFragments concatenates parts with sep between them, wrapped in
// prefix and suffix.
func joinFragments(prefix string, parts []Fragment, sep, suffix string) Fragment {
	out := Fragment{{HTML: prefix}}
	for i, p := range parts {
		if i > 0 {
			out = append(out, Segment{HTML: sep})
		}
		out = append(out, p...)
	}
	return append(out, Segment{HTML: suffix})
}

// htmlEscaper covers the five characters escaped in text and attributes.
var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#39;",
)

// escapeHTML escapes markup-significant characters and nothing else.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var codeSpanPattern = regexp.MustCompile("`(.*?)`")

// Escape turns a text run into HTML: entities are escaped, `code spans`
// are wrapped in <code> (a ~ inside a span renders as a backtick), and every
// other ~ becomes a non-breaking space.
func Escape(text string) string {
	s := escapeHTML(text)
	s = codeSpanPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		return "<code>" + strings.ReplaceAll(inner, "~", "&#96;") + "</code>"
	})
	return strings.ReplaceAll(s, "~", "&nbsp;")
}

// linkPattern matches an optional label followed by <destination>.
// Group 1 is the label, group 2 the destination.
var linkPattern = regexp.MustCompile(`(?:("[^"]*"|\S+))?<((?:ftp|https?|mailto|news|irc|REL):.*?|#.*?)>`)

// relPrefix marks a relative destination; it is stripped from the href.
const relPrefix = "REL:"

// RenderText renders a paragraph line, turning links into anchors and
// same-document references into pending references. line is only used to
// locate references in diagnostics.
func RenderText(raw string, line int) Fragment {
	var out Fragment
	rest := raw
	for {
		loc := linkPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if loc[0] > 0 {
			out = append(out, Segment{HTML: Escape(rest[:loc[0]])})
		}

		label := ""
		if loc[2] >= 0 {
			label = rest[loc[2]:loc[3]]
		}
		dest := rest[loc[4]:loc[5]]
		if len(label) >= 2 && strings.HasPrefix(label, `"`) && strings.HasSuffix(label, `"`) {
			label = label[1 : len(label)-1]
		}

		if strings.HasPrefix(dest, "#") {
			key := strings.TrimPrefix(strings.TrimPrefix(dest, "#"), ":")
			if label == "" {
				label = key
			}
			out = append(out, Segment{Ref: &Reference{Label: Escape(label), Key: key, Line: line}})
		} else {
			dest = strings.TrimPrefix(dest, relPrefix)
			if label == "" {
				label = dest
			}
			out = append(out, Segment{HTML: `<a href="` + escapeHTML(dest) + `">` + Escape(label) + `</a>`})
		}

		rest = rest[loc[1]:]
	}
	if rest != "" || len(out) == 0 {
		out = append(out, Segment{HTML: Escape(rest)})
	}
	return out
}
