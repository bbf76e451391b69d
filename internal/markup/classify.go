package markup

import (
	"regexp"
	"strings"
)

// BlockState is the kind of block currently being accumulated.
type BlockState int

// Block states. Empty is both the initial state and the state between blocks.
const (
	Empty BlockState = iota
	Paragraph
	List
	DefinitionList
	Code
)

// String returns the state name used in log output.
func (s BlockState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Paragraph:
		return "paragraph"
	case List:
		return "list"
	case DefinitionList:
		return "deflist"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// LineKind is the classification of a single source line.
type LineKind int

// Line kinds. Unrecognized is the zero value so that an unset
// classification is reported instead of silently treated as text.
const (
	Unrecognized LineKind = iota
	Title
	Heading
	ListItem
	DefinitionItem
	End
	Text
	CodeLine
	Image
	Comment
)

// String returns the kind name used in log output.
func (k LineKind) String() string {
	switch k {
	case Title:
		return "title"
	case Heading:
		return "heading"
	case ListItem:
		return "list"
	case DefinitionItem:
		return "deflist"
	case End:
		return "end"
	case Text:
		return "text"
	case CodeLine:
		return "code"
	case Image:
		return "image"
	case Comment:
		return "comment"
	default:
		return "unrecognized"
	}
}

// Classification is the result of classifying a line.
// Lang is only set for a CodeLine that opens a code block.
type Classification struct {
	Kind LineKind
	Lang string
}

var (
	titlePattern       = regexp.MustCompile(`^!\s`)
	titlePrefixPattern = regexp.MustCompile(`^!\s+`)
	codeClosePattern   = regexp.MustCompile(`^\}\}\}$`)
)

// codeOpen is the delimiter that opens a code block.
const codeOpen = "{{{"

// Classify decides what kind of line raw is, given the current block state.
// contentEmitted reports whether any block or heading was already written;
// a '!' line is a title only before that happens.
//
// Inside a code block only the closing delimiter is recognized, everything
// else is code taken verbatim.
func Classify(state BlockState, raw string, contentEmitted bool) Classification {
	if state == Code {
		if codeClosePattern.MatchString(raw) {
			return Classification{Kind: End}
		}
		return Classification{Kind: CodeLine}
	}

	switch {
	case titlePattern.MatchString(raw):
		if contentEmitted {
			return Classification{Kind: Text}
		}
		return Classification{Kind: Title}
	case strings.HasPrefix(raw, "="):
		return Classification{Kind: Heading}
	case strings.HasPrefix(raw, "*"):
		return Classification{Kind: ListItem}
	case strings.HasPrefix(raw, ":"):
		return Classification{Kind: DefinitionItem}
	case strings.TrimSpace(raw) == "":
		return Classification{Kind: End}
	case strings.HasPrefix(raw, codeOpen):
		return Classification{Kind: CodeLine, Lang: strings.TrimSpace(raw[len(codeOpen):])}
	case strings.HasPrefix(raw, "@"):
		return Classification{Kind: Image}
	case strings.HasPrefix(raw, "#"):
		return Classification{Kind: Comment}
	default:
		return Classification{Kind: Text}
	}
}
