package spec2html

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for library operations.
var (
	ErrDocumentInvalid = errors.New("document has errors")
	ErrSourceTooLarge  = errors.New("source exceeds maximum size")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")

	// Option validation errors.
	ErrInvalidHeadingBase   = errors.New("invalid heading base")
	ErrInvalidHighlightMode = errors.New("invalid highlight mode")
	ErrHighlightStyle       = errors.New("highlight style not found")
	ErrInvalidTimestamp     = errors.New("invalid timestamp format")

	// Asset loading errors.
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// DiagnosticsError reports the errors collected while processing a
// document. It wraps ErrDocumentInvalid.
type DiagnosticsError struct {
	Name        string
	Diagnostics []string
}

func (e *DiagnosticsError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%d)", e.Name, ErrDocumentInvalid, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n  ")
		b.WriteString(d)
	}
	return b.String()
}

func (e *DiagnosticsError) Unwrap() error {
	return ErrDocumentInvalid
}
