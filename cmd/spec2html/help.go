package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: spec2html [flags] <input_file> [output_file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile a spec document into an HTML page. The page goes to output_file,")
	fmt.Fprintln(w, "or to stdout when it is omitted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show debug logs and timing")
	fmt.Fprintln(w, "      --log-json               Write logs as JSON lines")
	fmt.Fprintln(w, "      --print-config           Print the effective config and exit")
	fmt.Fprintln(w, "      --version                Show version information")
	fmt.Fprintln(w, "  -h, --help                   Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -l, --layout <name|path>     Layout name (default, minimal) or file path")
	fmt.Fprintln(w, "      --heading-base <n>       Offset added to heading depth (0-5, default: 1)")
	fmt.Fprintln(w, "      --strict-refs            Report ambiguous references as errors")
	fmt.Fprintln(w, "      --highlight <mode>       Code highlighting: client, server")
	fmt.Fprintln(w, "      --style <name>           Chroma style for server highlighting")
	fmt.Fprintln(w, "      --timestamp-format <s>   NOW token format: preset or tokens")
	fmt.Fprintln(w, "                               Presets: iso, classic, european, us, long, date")
	fmt.Fprintln(w, "                               Tokens: YYYY, MM, DD, HH, mm, ss, ZZ")
	fmt.Fprintln(w, "      --asset-path <dir>       Custom layout directory ({dir}/layouts/{name}.html)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --pdf                    Write a PDF (default: input name with .pdf)")
	fmt.Fprintln(w, "  -t, --timeout <duration>     PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout discovery (when no layout is configured):")
	fmt.Fprintln(w, "  <input without extension>.lsp, then layout.spec in the current directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SPEC2HTML_CONFIG, SPEC2HTML_LAYOUT, SPEC2HTML_HEADING_BASE,")
	fmt.Fprintln(w, "  SPEC2HTML_LOG_LEVEL, SPEC2HTML_TIMEOUT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 document errors or bad arguments, 2 invalid flags or config,")
	fmt.Fprintln(w, "  3 file errors, 4 browser errors")
}

// printVersion prints the version line.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "spec2html %s\n", Version)
}
