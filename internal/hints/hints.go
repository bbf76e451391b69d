// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-spec2html/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// maxListed caps how many names a hint enumerates.
const maxListed = 8

// ForBrowserConnect returns hints for browser connection errors during PDF
// output. Detects CI/Docker and suggests the relevant rod variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the PDF timeout.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and a user config under ~/.config/go-spec2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-spec2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLayoutNotFound lists the built-in layouts.
func ForLayoutNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("built-in layouts: " + strings.Join(available, ", ") +
		"; or pass a file path, or add layout.spec next to the input")
}

// ForHighlightStyle lists a few of the available chroma styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	listed := available
	suffix := ""
	if len(listed) > maxListed {
		listed = listed[:maxListed]
		suffix = ", ..."
	}
	return format("available styles include: " + strings.Join(listed, ", ") + suffix)
}

// ForAmbiguousReference explains prefix matching of reference keys.
func ForAmbiguousReference() string {
	return format("references match every heading starting with the key; lengthen the key to pick one")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
