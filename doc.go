// Package spec2html compiles line-oriented spec documents into HTML pages.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := spec2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, spec2html.Input{
//	    Name:   "design.spec",
//	    Source: "! Design\n= Intro\nSee \"the intro\"<#Intro>.\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("design.html", result.HTML, 0644)
//
// # Source Syntax
//
// Every line is classified by its first characters:
//
//	! Title            document title (only before any content)
//	= Heading          heading, one '=' per level
//	* item             unordered list item
//	: term = meaning   definition list entry
//	{{{ lang           code block until a line reading }}}
//	@ src [style]      image
//	# comment          ignored
//	(blank)            ends the current block
//
// Any other line is paragraph text. Inside text, `code` renders as a code
// span, ~ as a non-breaking space, and label<https://example.com> as a link.
// A destination starting with '#' references the first heading whose text
// starts with the rest, resolved once the whole document has been read.
//
// # Layouts
//
// The page is produced by substituting {{{{NAME}}}} tokens in a layout:
// CONTENT, TOC, TOC_NO_HEADING, TITLE, NOW, NOW_NUMERIC, FILENAME,
// GENERATOR and HIGHLIGHT_CSS. The region between <!-- highlight:begin -->
// and <!-- highlight:end --> is dropped when no code block has a language.
// Use WithLayout, WithAssetPath or WithLayoutLoader to replace the built-in
// layout, or Input.Layout for a single conversion.
//
// # Errors
//
// Structural problems and unresolved references are collected rather than
// stopping the conversion. Convert returns them in ConvertResult.Diagnostics
// together with a *DiagnosticsError wrapping ErrDocumentInvalid.
//
// # Browser Requirements
//
// Input.PDF requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/). For containers and
// CI, set ROD_NO_SANDBOX=1; use ROD_BROWSER_BIN for a custom binary.
package spec2html
