package markup

import (
	"fmt"
	"strconv"
	"strings"
)

// matchHeadings returns every heading whose text starts with key,
// in document order.
func matchHeadings(headings []HeadingRecord, key string) []HeadingRecord {
	var matches []HeadingRecord
	for _, h := range headings {
		if strings.HasPrefix(h.Text, key) {
			matches = append(matches, h)
		}
	}
	return matches
}

// resolveReference renders a reference against the outline.
//
//	no match:  label, plus an "undefined reference" error
//	one match: <a href="#id">label</a>
//	more:      label [<a href="#id1">1</a>, <a href="#id2">2</a>]
func (d *Document) resolveReference(ref *Reference) string {
	matches := matchHeadings(d.headings, ref.Key)

	switch len(matches) {
	case 0:
		d.errorf("undefined reference `%s` with label `%s`", ref.Key, ref.Label)
		d.opts.logger.Warn().
			Str("key", ref.Key).
			Int("line", ref.Line).
			Msg("undefined reference")
		return ref.Label
	case 1:
		return `<a href="#` + matches[0].ID + `">` + ref.Label + `</a>`
	}

	d.opts.logger.Warn().
		Str("key", ref.Key).
		Int("line", ref.Line).
		Int("matches", len(matches)).
		Msg("ambiguous reference")
	if d.opts.strictReferences {
		d.errorf("ambiguous reference `%s` with label `%s` (%d matches)", ref.Key, ref.Label, len(matches))
	}

	links := make([]string, len(matches))
	for i, h := range matches {
		links[i] = `<a href="#` + h.ID + `">` + strconv.Itoa(i+1) + `</a>`
	}
	return fmt.Sprintf("%s [%s]", ref.Label, strings.Join(links, ", "))
}

// resolveFragment renders a fragment, resolving each pending reference.
func (d *Document) resolveFragment(f Fragment) string {
	var b strings.Builder
	for _, seg := range f {
		if seg.Ref != nil {
			b.WriteString(d.resolveReference(seg.Ref))
			continue
		}
		b.WriteString(seg.HTML)
	}
	return b.String()
}

// resolveReferences renders the final content once the outline is complete.
func (d *Document) resolveReferences() {
	d.resolved = make([]string, len(d.content))
	for i, f := range d.content {
		d.resolved[i] = d.resolveFragment(f)
	}
}
