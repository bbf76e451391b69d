package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-spec2html/internal/config"
	"github.com/alnah/go-spec2html/internal/fileutil"
)

const envPrefix = "SPEC2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // SPEC2HTML_CONFIG: config file name or path
	Layout      string        // SPEC2HTML_LAYOUT: layout name or path
	HeadingBase *int          // SPEC2HTML_HEADING_BASE: heading offset
	LogLevel    string        // SPEC2HTML_LOG_LEVEL: trace, debug, info, warn, error
	Timeout     time.Duration // SPEC2HTML_TIMEOUT: PDF generation timeout
}

// knownEnvVars lists valid SPEC2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SPEC2HTML_CONFIG":       true,
	"SPEC2HTML_LAYOUT":       true,
	"SPEC2HTML_HEADING_BASE": true,
	"SPEC2HTML_LOG_LEVEL":    true,
	"SPEC2HTML_TIMEOUT":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored, not errors.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SPEC2HTML_CONFIG"),
		Layout:     os.Getenv("SPEC2HTML_LAYOUT"),
		LogLevel:   os.Getenv("SPEC2HTML_LOG_LEVEL"),
	}

	if timeout := os.Getenv("SPEC2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if base := os.Getenv("SPEC2HTML_HEADING_BASE"); base != "" {
		if b, err := strconv.Atoi(base); err == nil && b >= 0 {
			cfg.HeadingBase = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SPEC2HTML_* variables.
// Helps catch typos like SPEC2HTML_LAYOUTS instead of SPEC2HTML_LAYOUT.
func warnUnknownEnvVars(logger zerolog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn().Str("variable", name).Msg("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Layout != "" && cfg.Layout.Path == "" && cfg.Layout.Name == "" {
		setLayout(cfg, env.Layout)
	}
	if env.HeadingBase != nil && cfg.Headings.Base == nil {
		base := *env.HeadingBase
		cfg.Headings.Base = &base
	}
	if env.Timeout > 0 && cfg.Output.Timeout == "" {
		cfg.Output.Timeout = env.Timeout.String()
	}
}

// setLayout stores a layout name or path in the matching config field.
// Path wins over Name in config, so a name clears any path.
func setLayout(cfg *config.Config, nameOrPath string) {
	if fileutil.IsFilePath(nameOrPath) {
		cfg.Layout.Path = nameOrPath
		return
	}
	cfg.Layout.Path = ""
	cfg.Layout.Name = nameOrPath
}
