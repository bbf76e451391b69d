package pipeline

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrSourceTooLarge indicates the input exceeds MaxSourceSize.
var ErrSourceTooLarge = errors.New("source too large")

// MaxSourceSize limits how much input ReadLines accepts (default 16MB).
var MaxSourceSize int64 = 16 << 20

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitLines splits content into lines without their terminators.
// A final newline does not produce a trailing empty line.
func SplitLines(content string) []string {
	content = normalizeLineEndings(content)
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// ReadLines reads r to the end and splits it into lines.
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSourceSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxSourceSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSourceTooLarge, MaxSourceSize)
	}
	return SplitLines(string(data)), nil
}
