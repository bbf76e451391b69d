package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-spec2html/internal/fileutil"
)

// ErrReadLayout indicates a discovered layout file could not be read.
var ErrReadLayout = errors.New("failed to read layout file")

// Layout discovery candidates.
const (
	sidecarLayoutExt = ".lsp"        // next to the input: doc.spec -> doc.lsp
	cwdLayoutFile    = "layout.spec" // shared layout in the working directory
)

// layoutCandidates returns the files checked for a layout, most specific first.
func layoutCandidates(inputPath string) []string {
	return []string{
		fileutil.ReplaceExtension(inputPath, sidecarLayoutExt),
		cwdLayoutFile,
	}
}

// discoverLayout returns the first existing layout candidate for inputPath
// and its content. An empty path means none was found and the converter
// layout applies.
func discoverLayout(inputPath string) (path, content string, err error) {
	for _, candidate := range layoutCandidates(inputPath) {
		if candidate == inputPath || !fileutil.FileExists(candidate) {
			continue
		}
		data, err := os.ReadFile(candidate) // #nosec G304 -- path derived from user input
		if err != nil {
			return "", "", fmt.Errorf("%w: %s: %v", ErrReadLayout, candidate, err)
		}
		return candidate, string(data), nil
	}
	return "", "", nil
}
