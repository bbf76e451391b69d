package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	spec2html "github.com/alnah/go-spec2html"
)

// Converter is the part of *spec2html.Converter the CLI uses.
type Converter interface {
	Convert(ctx context.Context, input spec2html.Input) (*spec2html.ConvertResult, error)
	Close() error
}

var _ Converter = (*spec2html.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...spec2html.Option) (Converter, error)
	TuneRuntime  func(logger zerolog.Logger) // nil in tests
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		NewConverter: newLibraryConverter,
		TuneRuntime:  tuneRuntime,
	}
}

func newLibraryConverter(opts ...spec2html.Option) (Converter, error) {
	c, err := spec2html.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
