package main

// Notes:
// - parseFlags: we test short and long forms, defaults (including the
//   heading-base sentinel), interspersed positionals and parse errors.

import (
	"errors"
	"slices"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	f, args, err := parseFlags([]string{"doc.spec"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if !slices.Equal(args, []string{"doc.spec"}) {
		t.Errorf("args = %v, want [doc.spec]", args)
	}
	if f.render.headingBase != headingBaseUnset {
		t.Errorf("headingBase = %d, want sentinel %d", f.render.headingBase, headingBaseUnset)
	}
	if f.output.pdf || f.render.strictRefs || f.common.verbose || f.common.quiet {
		t.Errorf("boolean flags should default to false: %+v", f)
	}
}

func TestParseFlags_Values(t *testing.T) {
	t.Parallel()

	f, args, err := parseFlags([]string{
		"-c", "team",
		"-q",
		"--log-json",
		"-l", "minimal",
		"--heading-base", "0",
		"--strict-refs",
		"--highlight", "server",
		"--style", "monokai",
		"--timestamp-format", "iso",
		"--asset-path", "/srv/assets",
		"in.spec",
		"--pdf",
		"-t", "45s",
		"out.pdf",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if !slices.Equal(args, []string{"in.spec", "out.pdf"}) {
		t.Errorf("args = %v, want [in.spec out.pdf]", args)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"config", f.common.config, "team"},
		{"quiet", f.common.quiet, true},
		{"logJSON", f.common.logJSON, true},
		{"layout", f.render.layout, "minimal"},
		{"headingBase", f.render.headingBase, 0},
		{"strictRefs", f.render.strictRefs, true},
		{"highlight", f.render.highlight, "server"},
		{"style", f.render.style, "monokai"},
		{"timestampFormat", f.render.timestampFormat, "iso"},
		{"assetPath", f.render.assetPath, "/srv/assets"},
		{"pdf", f.output.pdf, true},
		{"timeout", f.output.timeout, "45s"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestParseFlags_MetaFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		check func(*cliFlags) bool
	}{
		{"help long", []string{"--help"}, func(f *cliFlags) bool { return f.help }},
		{"help short", []string{"-h"}, func(f *cliFlags) bool { return f.help }},
		{"version", []string{"--version"}, func(f *cliFlags) bool { return f.version }},
		{"print config", []string{"--print-config"}, func(f *cliFlags) bool { return f.printConfig }},
		{"verbose", []string{"-v"}, func(f *cliFlags) bool { return f.common.verbose }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, _, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags(%v) error = %v", tt.args, err)
			}
			if !tt.check(f) {
				t.Errorf("parseFlags(%v) did not set the flag", tt.args)
			}
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope", "a.spec"}},
		{"missing value", []string{"a.spec", "--layout"}},
		{"non numeric heading base", []string{"--heading-base", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := parseFlags(tt.args)
			if !errors.Is(err, ErrInvalidFlags) {
				t.Errorf("parseFlags(%v) error = %v, want ErrInvalidFlags", tt.args, err)
			}
		})
	}
}
