// Package dateutil converts user-friendly timestamp formats to Go layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDateFormat indicates an invalid timestamp format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultTimestampFormat mirrors the classic "date time zone" rendering
// used for the NOW token.
const DefaultTimestampFormat = "YYYY-MM-DD HH:mm:ss ZZ"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching. Tokens are
// case-sensitive: MM is the month, mm the minute.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"ZZ", "-0700"},
	{"M", "1"},
	{"D", "2"},
	{"A", "PM"},
}

// Presets provides named shortcuts for common timestamp formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD HH:mm:ss",
	"classic":  DefaultTimestampFormat,
	"european": "DD/MM/YYYY HH:mm",
	"us":       "MM/DD/YYYY hh:mm A",
	"long":     "dddd, MMMM D, YYYY HH:mm",
	"date":     "YYYY-MM-DD",
}

// ParseDateFormat converts a user-friendly format string to Go's time layout.
// Use brackets to escape literal text: [at] preserves "at" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has
// unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// Layout resolves a preset name (case-insensitive) or a token format to a
// Go time layout. An empty format selects DefaultTimestampFormat.
func Layout(format string) (string, error) {
	if format == "" {
		format = DefaultTimestampFormat
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}
