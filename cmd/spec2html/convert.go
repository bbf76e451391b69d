package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	spec2html "github.com/alnah/go-spec2html"
	"github.com/alnah/go-spec2html/internal/config"
	"github.com/alnah/go-spec2html/internal/fileutil"
	"github.com/alnah/go-spec2html/internal/highlight"
	"github.com/alnah/go-spec2html/internal/hints"
	"github.com/alnah/go-spec2html/internal/logging"
	"github.com/alnah/go-spec2html/internal/yamlutil"
)

// Sentinel errors for CLI file operations.
var (
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// convertParams holds the resolved positional arguments.
type convertParams struct {
	input  string
	output string // empty = stdout, or <input>.pdf with --pdf
}

// run executes the command and returns the process exit code.
func run(args []string, env *Environment) int {
	f, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	if f.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if f.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}

	if !f.printConfig && len(positional) != 1 && len(positional) != 2 {
		printUsage(env.Stderr)
		return ExitGeneral
	}

	envCfg := loadEnvConfig()
	logger := newLogger(&f.common, envCfg, env.Stderr)
	if env.TuneRuntime != nil {
		env.TuneRuntime(logger)
	}
	warnUnknownEnvVars(logger)

	configName := f.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg, err := resolveConfig(configName, envCfg, f)
	if err != nil {
		return reportError(env.Stderr, err, configName)
	}

	if f.printConfig {
		return printConfig(env, cfg)
	}

	params := convertParams{input: positional[0]}
	if len(positional) == 2 {
		params.output = positional[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := convertFile(ctx, env, cfg, logger, params); err != nil {
		return reportError(env.Stderr, err, configName)
	}
	return ExitSuccess
}

// newLogger builds the CLI logger. --verbose and --quiet win over
// SPEC2HTML_LOG_LEVEL; an unknown level falls back to warn.
func newLogger(f *commonFlags, envCfg *envConfig, w io.Writer) zerolog.Logger {
	level := envCfg.LogLevel
	switch {
	case f.verbose:
		level = logging.LevelDebug
	case f.quiet:
		level = logging.LevelError
	}

	logger, err := logging.New(logging.Config{Out: w, Level: level, JSON: f.logJSON})
	if err != nil {
		fmt.Fprintf(w, "warning: %v, using %s\n", err, logging.LevelWarn)
		logger, _ = logging.New(logging.Config{Out: w, JSON: f.logJSON})
	}
	return logger
}

// resolveConfig loads the config file, if any, then applies environment
// variables and flags on top and validates the result.
func resolveConfig(configName string, envCfg *envConfig, f *cliFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags to cfg.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	r := f.render
	if r.layout != "" {
		setLayout(cfg, r.layout)
	}
	if r.headingBase != headingBaseUnset {
		base := r.headingBase
		cfg.Headings.Base = &base
	}
	if r.strictRefs {
		cfg.References.Strict = true
	}
	if r.highlight != "" {
		cfg.Highlight.Mode = r.highlight
	}
	if r.style != "" {
		cfg.Highlight.Style = r.style
	}
	if r.timestampFormat != "" {
		cfg.Timestamp.Format = r.timestampFormat
	}
	if r.assetPath != "" {
		cfg.Assets.BasePath = r.assetPath
	}

	if f.output.pdf {
		cfg.Output.PDF = true
	}
	if f.output.timeout != "" {
		cfg.Output.Timeout = f.output.timeout
	}
}

// converterOptions maps a validated config to converter options.
func converterOptions(cfg *config.Config, logger zerolog.Logger, now func() time.Time) ([]spec2html.Option, error) {
	opts := []spec2html.Option{
		spec2html.WithLogger(logger),
		spec2html.WithClock(now),
		spec2html.WithStrictReferences(cfg.References.Strict),
	}

	switch {
	case cfg.Layout.Path != "":
		opts = append(opts, spec2html.WithLayout(asPath(cfg.Layout.Path)))
	case cfg.Layout.Name != "":
		opts = append(opts, spec2html.WithLayout(cfg.Layout.Name))
	}
	if cfg.Headings.Base != nil {
		opts = append(opts, spec2html.WithHeadingBase(*cfg.Headings.Base))
	}
	if cfg.Highlight.Mode != "" {
		opts = append(opts, spec2html.WithHighlightMode(strings.ToLower(cfg.Highlight.Mode)))
	}
	if cfg.Highlight.Style != "" {
		opts = append(opts, spec2html.WithHighlightStyle(cfg.Highlight.Style))
	}
	if cfg.Timestamp.Format != "" {
		opts = append(opts, spec2html.WithTimestampFormat(cfg.Timestamp.Format))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, spec2html.WithAssetPath(cfg.Assets.BasePath))
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, spec2html.WithTimeout(timeout))
	}

	return opts, nil
}

// asPath makes a bare file name look like a path, so the converter reads
// it from disk instead of looking up a layout name.
func asPath(p string) string {
	if fileutil.IsFilePath(p) {
		return p
	}
	return "." + string(filepath.Separator) + p
}

// convertFile compiles one input file and writes the page or PDF.
func convertFile(ctx context.Context, env *Environment, cfg *config.Config, logger zerolog.Logger, p convertParams) error {
	start := env.Now()

	source, err := os.ReadFile(p.input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	var layout string
	if cfg.Layout.Path == "" && cfg.Layout.Name == "" {
		path, content, err := discoverLayout(p.input)
		if err != nil {
			return err
		}
		if path != "" {
			logger.Debug().Str("layout", path).Msg("using discovered layout")
			layout = content
		}
	}

	opts, err := converterOptions(cfg, logger, env.Now)
	if err != nil {
		return err
	}
	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("closing converter")
		}
	}()

	result, err := conv.Convert(ctx, spec2html.Input{
		Name:    p.input,
		Source:  string(source),
		Layout:  layout,
		PDF:     cfg.Output.PDF,
		BaseDir: filepath.Dir(p.input),
	})
	if err != nil {
		return err
	}

	if cfg.Output.PDF {
		out := p.output
		if out == "" {
			out = fileutil.ReplaceExtension(p.input, ".pdf")
		}
		if err := writeOutput(out, result.PDF); err != nil {
			return err
		}
		logger.Info().Str("output", out).Dur("elapsed", env.Now().Sub(start)).Msg("PDF written")
		return nil
	}

	if p.output == "" {
		if _, err := env.Stdout.Write(result.HTML); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		logger.Debug().Dur("elapsed", env.Now().Sub(start)).Msg("page written to stdout")
		return nil
	}

	if err := writeOutput(p.output, result.HTML); err != nil {
		return err
	}
	logger.Info().Str("output", p.output).Dur("elapsed", env.Now().Sub(start)).Msg("page written")
	return nil
}

// writeOutput writes data to path, creating its directory.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- pages are meant to be shared
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// printConfig writes the effective config as YAML.
func printConfig(env *Environment, cfg *config.Config) int {
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return reportError(env.Stderr, fmt.Errorf("encoding config: %w", err), "")
	}
	if _, err := env.Stdout.Write(data); err != nil {
		return reportError(env.Stderr, fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err), "")
	}
	return ExitSuccess
}

// reportError prints err with any matching hint and returns its exit code.
// Document diagnostics are printed one per line under "Error:".
func reportError(w io.Writer, err error, configName string) int {
	var diag *spec2html.DiagnosticsError
	if errors.As(err, &diag) {
		fmt.Fprintln(w, "Error:")
		fmt.Fprintln(w, strings.Join(diag.Diagnostics, "\n")+diagnosticsHint(diag.Diagnostics))
		return ExitGeneral
	}

	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err, configName))
	return exitCodeFor(err)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, spec2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, spec2html.ErrLayoutNotFound):
		return hints.ForLayoutNotFound(spec2html.BuiltinLayouts())
	case errors.Is(err, spec2html.ErrHighlightStyle):
		return hints.ForHighlightStyle(highlight.Styles())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// diagnosticsHint explains prefix matching when a reference was ambiguous.
func diagnosticsHint(diagnostics []string) string {
	for _, d := range diagnostics {
		if strings.HasPrefix(d, "ambiguous reference") {
			return hints.ForAmbiguousReference()
		}
	}
	return ""
}
