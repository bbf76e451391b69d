// Package markup compiles the line-oriented spec markup into HTML.
//
// # Source Syntax
//
// Every line is classified by its prefix:
//
//	! Title          document title (only before any content is emitted)
//	= Heading        heading, depth = number of '=' characters
//	* item           unordered list item
//	: term = def     definition list entry
//	{{{lang          opens a code block, closed by a line holding only }}}
//	@ url style...   image with optional inline style
//	# comment        dropped
//	(blank)          ends the current block
//
// Any other line is paragraph text. Paragraph text recognizes links of the
// form label<http://...>, "quoted label"<https://...> and same-document
// references label<#Heading text>, plus `code spans` and ~ as a
// non-breaking space.
//
// # Processing Model
//
// A Document runs a single pass over the lines, accumulating one block at
// a time and flushing it when the block kind changes. Headings are recorded
// in document order; after the pass the table of contents is built and
// deferred references are resolved against the recorded headings. Errors
// never abort processing: they are collected and reported by Errors.
package markup
