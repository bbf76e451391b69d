// Package config loads and validates spec2html configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-spec2html/internal/dateutil"
	"github.com/alnah/go-spec2html/internal/fileutil"
	"github.com/alnah/go-spec2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength  = 4096
	MaxNameLength  = 100
	MaxStyleLength = 50
	MinHeadingBase = 0
	MaxHeadingBase = 5 // "=" at base 5 is <h6>
	MaxTimeout     = 10 * time.Minute
)

const configDirName = "go-spec2html"

// Highlight modes accepted in highlight.mode.
const (
	highlightModeClient = "client"
	highlightModeServer = "server"
)

// Config holds all configuration for a conversion.
type Config struct {
	Layout     LayoutConfig     `yaml:"layout"`
	Headings   HeadingsConfig   `yaml:"headings"`
	References ReferencesConfig `yaml:"references"`
	Highlight  HighlightConfig  `yaml:"highlight"`
	Output     OutputConfig     `yaml:"output"`
	Timestamp  TimestampConfig  `yaml:"timestamp"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// LayoutConfig selects the page layout. Path wins over Name.
type LayoutConfig struct {
	Path string `yaml:"path,omitempty"` // layout file on disk
	Name string `yaml:"name,omitempty"` // built-in or assets.basePath layout
}

// HeadingsConfig controls heading levels.
type HeadingsConfig struct {
	Base *int `yaml:"base,omitempty"` // nil = default (1)
}

// ReferencesConfig controls cross-reference resolution.
type ReferencesConfig struct {
	Strict bool `yaml:"strict"` // ambiguous references are errors
}

// HighlightConfig controls code block highlighting.
type HighlightConfig struct {
	Mode  string `yaml:"mode,omitempty"`  // "client" (default) or "server"
	Style string `yaml:"style,omitempty"` // chroma style for HIGHLIGHT_CSS
}

// OutputConfig defines output options.
type OutputConfig struct {
	PDF     bool   `yaml:"pdf"`               // render the page to PDF
	Timeout string `yaml:"timeout,omitempty"` // Go duration, e.g. "30s"
}

// TimestampConfig defines the NOW token format.
type TimestampConfig struct {
	Format string `yaml:"format,omitempty"` // dateutil preset or tokens
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath,omitempty"` // Empty = embedded layouts only
}

// Validate checks ranges, enumerations and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("layout.path", c.Layout.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("layout.name", c.Layout.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}

	if c.Headings.Base != nil {
		if b := *c.Headings.Base; b < MinHeadingBase || b > MaxHeadingBase {
			return fmt.Errorf("%w: headings.base must be between %d and %d, got %d",
				ErrInvalidValue, MinHeadingBase, MaxHeadingBase, b)
		}
	}

	switch strings.ToLower(c.Highlight.Mode) {
	case "", highlightModeClient, highlightModeServer:
	default:
		return fmt.Errorf("%w: highlight.mode %q (must be client or server)", ErrInvalidValue, c.Highlight.Mode)
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	if c.Timestamp.Format != "" {
		if _, err := dateutil.Layout(c.Timestamp.Format); err != nil {
			return fmt.Errorf("%w: timestamp.format: %v", ErrInvalidValue, err)
		}
	}

	return nil
}

// Timeout parses output.timeout. Zero means unset.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Output.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Output.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: output.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: output.timeout must be positive and at most %s, got %s",
			ErrInvalidValue, MaxTimeout, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that leaves every setting to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name in lookup
// order: the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
