// Package pipeline holds the I/O stages around the markup compiler:
//   - reading a source into normalized lines
//   - substituting rendered values into a layout template
//   - stripping the optional highlight region from a rendered page
//
// The compiler itself lives in internal/markup and works on lines only.
package pipeline
