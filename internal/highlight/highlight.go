// Package highlight renders tagged code blocks and their stylesheet with chroma.
package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Mode selects where code highlighting happens.
type Mode string

// Highlighting modes.
const (
	// ModeClient emits class-tagged plain code for a script in the layout.
	ModeClient Mode = "client"
	// ModeServer tokenizes code at build time into chroma class spans.
	ModeServer Mode = "server"
)

// DefaultStyle is the chroma style used for the server-side stylesheet.
const DefaultStyle = "github"

// Sentinel errors for highlighter setup.
var (
	ErrStyleNotFound = errors.New("highlight style not found")
	ErrInvalidMode   = errors.New("invalid highlight mode")
)

// ParseMode validates a mode name. Empty means ModeClient.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeClient:
		return ModeClient, nil
	case ModeServer:
		return ModeServer, nil
	default:
		return "", fmt.Errorf("%w: %q (must be client or server)", ErrInvalidMode, s)
	}
}

// Chroma highlights code with chroma lexers and a class-based HTML formatter.
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Chroma highlighter for the named style.
// An empty name selects DefaultStyle.
func New(styleName string) (*Chroma, error) {
	if styleName == "" {
		styleName = DefaultStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, styleName)
	}

	return &Chroma{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),           // stylesheet comes from CSS()
			chromahtml.PreventSurroundingPre(true), // the compiler writes the <pre>
		),
	}, nil
}

// Highlight tokenizes code with the lexer registered for lang.
// ok is false when no lexer matches or formatting fails.
func (c *Chroma) Highlight(lang, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, c.style, it); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}

// CSS returns the stylesheet for the highlighter's style.
func (c *Chroma) CSS() (string, error) {
	var buf bytes.Buffer
	if err := c.formatter.WriteCSS(&buf, c.style); err != nil {
		return "", fmt.Errorf("writing highlight stylesheet: %w", err)
	}
	return buf.String(), nil
}

// KnownLanguage reports whether chroma has a lexer for lang.
func KnownLanguage(lang string) bool {
	return lexers.Get(lang) != nil
}

// Styles returns the sorted names of the available styles.
func Styles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
