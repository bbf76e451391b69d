// Package logging builds the zerolog logger shared by the CLI and the compiler.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Level names accepted by ParseLevel.
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config holds logger settings.
type Config struct {
	Out   io.Writer
	Level string // one of the Level* names, default warn
	JSON  bool   // raw JSON lines instead of the console format
}

// ParseLevel converts a level name to a zerolog level.
// An empty name means warn.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LevelWarn, "warning":
		return zerolog.WarnLevel, nil
	case LevelTrace:
		return zerolog.TraceLevel, nil
	case LevelDebug:
		return zerolog.DebugLevel, nil
	case LevelInfo:
		return zerolog.InfoLevel, nil
	case LevelError:
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// New creates a logger writing to cfg.Out. The level is set on the logger
// itself, not globally, so tests can run loggers side by side.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := cfg.Out
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Out,
			TimeFormat: "15:04:05",
			NoColor:    true,
		}
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "spec2html").
		Logger(), nil
}
