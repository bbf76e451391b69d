package markup

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

// HeadingRecord is one entry of the document outline.
type HeadingRecord struct {
	Depth int    // 1 = most significant
	Text  string // raw heading text
	ID    string // anchor name
}

var headingPattern = regexp.MustCompile(`^(=+)\s+(.*)$`)

// headingID derives a stable anchor from the record position, depth and text.
func headingID(index, depth int, text string) string {
	sum := md5.Sum([]byte(strconv.Itoa(index) + strconv.Itoa(depth) + text))
	return hex.EncodeToString(sum[:])
}

// parseHeading splits "== text" into depth and text.
func parseHeading(raw string) (depth int, text string, ok bool) {
	m := headingPattern.FindStringSubmatch(raw)
	if m == nil || m[2] == "" {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// renderHeading renders a heading line and records it in the outline.
// Heading text is emitted as written, so it may carry inline HTML.
func (d *Document) renderHeading(raw string) (string, bool) {
	depth, text, ok := parseHeading(raw)
	if !ok {
		return "", false
	}

	rec := HeadingRecord{
		Depth: depth,
		Text:  text,
		ID:    headingID(len(d.headings), depth, text),
	}
	d.headings = append(d.headings, rec)
	d.opts.logger.Debug().
		Int("depth", depth).
		Str("id", rec.ID).
		Int("line", d.line).
		Msg("heading recorded")

	level := strconv.Itoa(d.opts.headingBase + depth)
	return "<h" + level + "><a name='" + rec.ID + "'></a>" + text + "</h" + level + ">", true
}

// tocBanner returns the "Table of contents" heading placed above the TOC.
func tocBanner(base int) string {
	level := strconv.Itoa(base + 1)
	return "<h" + level + ">Table of contents</h" + level + ">"
}

// generateTOC renders the outline as nested lists. A trailing sentinel of
// depth 0 closes every list still open, so the output is always balanced.
// The outermost list is a bare <ul>; deeper lists are wrapped in an
// unbulleted <li> so they stay valid list children.
func generateTOC(headings []HeadingRecord) []string {
	var lines []string
	level := 0
	records := append(append([]HeadingRecord(nil), headings...), HeadingRecord{})

	for i, rec := range records {
		sentinel := i == len(records)-1
		switch {
		case rec.Depth > level:
			for l := level; l < rec.Depth; l++ {
				if l == 0 {
					lines = append(lines, indent(l)+"<ul>")
				} else {
					lines = append(lines, indent(l)+`<li style="list-style-type: none;"><ul>`)
				}
			}
		case rec.Depth < level:
			for l := level - 1; l >= rec.Depth; l-- {
				if l == 0 {
					lines = append(lines, indent(l)+"</ul>")
				} else {
					lines = append(lines, indent(l)+"</ul></li>")
				}
			}
		}
		level = rec.Depth
		if !sentinel {
			lines = append(lines, indent(rec.Depth)+`<li><a href="#`+rec.ID+`">`+rec.Text+`</a></li>`)
		}
	}
	return lines
}

func indent(n int) string {
	return strings.Repeat(" ", n)
}
