package main

import (
	"context"
	"errors"
	"os"

	spec2html "github.com/alnah/go-spec2html"
	"github.com/alnah/go-spec2html/internal/config"
)

// Exit codes for the spec2html CLI.
// 0=success, 1=general (including document errors and a wrong argument
// count), 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page written
	ExitGeneral = 1 // Document errors, wrong argument count, unexpected errors
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // Input, layout or output file errors
	ExitBrowser = 4 // Browser/Chrome errors during PDF output
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, spec2html.ErrBrowserConnect) ||
		errors.Is(err, spec2html.ErrPageCreate) ||
		errors.Is(err, spec2html.ErrPageLoad) ||
		errors.Is(err, spec2html.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadLayout) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, spec2html.ErrSourceTooLarge) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, spec2html.ErrInvalidHeadingBase) ||
		errors.Is(err, spec2html.ErrInvalidHighlightMode) ||
		errors.Is(err, spec2html.ErrHighlightStyle) ||
		errors.Is(err, spec2html.ErrInvalidTimestamp) ||
		errors.Is(err, spec2html.ErrLayoutNotFound) ||
		errors.Is(err, spec2html.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidFlags) {
		return ExitUsage
	}

	return ExitGeneral
}
