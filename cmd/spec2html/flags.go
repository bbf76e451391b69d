package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// headingBaseUnset detects if --heading-base was explicitly set.
// Since 0 is a valid base, we use an out-of-range sentinel.
const headingBaseUnset = -1

// commonFlags holds logging and config selection flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// renderFlags holds flags that change how the page is built.
type renderFlags struct {
	layout          string // Name or path
	headingBase     int
	strictRefs      bool
	highlight       string // client or server
	style           string // chroma style for server highlighting
	timestampFormat string
	assetPath       string // Override layout directory
}

// outputFlags holds output mode flags.
type outputFlags struct {
	pdf     bool
	timeout string
}

// cliFlags holds every flag of the command.
type cliFlags struct {
	common      commonFlags
	render      renderFlags
	output      outputFlags
	printConfig bool
	version     bool
	help        bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.BoolVar(&f.logJSON, "log-json", false, "write logs as JSON lines")
}

// addRenderFlags adds page building flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.layout, "layout", "l", "", "layout name or file path")
	fs.IntVar(&f.headingBase, "heading-base", headingBaseUnset, "offset added to heading depth (0-5, default: 1)")
	fs.BoolVar(&f.strictRefs, "strict-refs", false, "report ambiguous references as errors")
	fs.StringVar(&f.highlight, "highlight", "", "code highlighting: client, server")
	fs.StringVar(&f.style, "style", "", "chroma style for server highlighting")
	fs.StringVar(&f.timestampFormat, "timestamp-format", "", "NOW token format (preset or tokens)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom layout directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.pdf, "pdf", false, "write a PDF instead of HTML")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// parseFlags parses command-line flags and returns positional args.
// Parse errors wrap ErrInvalidFlags.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("spec2html", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.output)
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	return f, fs.Args(), nil
}
