package pipeline

// Notes:
// - Paths are built with filepath so expectations hold on Windows too.
// - Full documents and fragments are both covered since layouts may be either.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveRelativePaths
// ---------------------------------------------------------------------------

func TestResolveRelativePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	imgURL := fileURL(filepath.Join(dir, "img", "pic.png"))
	pageURL := fileURL(filepath.Join(dir, "next.html"))

	tests := []struct {
		name    string
		page    string
		want    []string
		exclude []string
	}{
		{
			name: "relative image",
			page: `<p><img src="img/pic.png" /></p>`,
			want: []string{`src="` + imgURL + `"`},
		},
		{
			name: "dot slash image",
			page: `<img src="./img/pic.png"/>`,
			want: []string{`src="` + imgURL + `"`},
		},
		{
			name: "relative link",
			page: `<a href="next.html">next</a>`,
			want: []string{`href="` + pageURL + `"`},
		},
		{
			name: "anchor untouched",
			page: `<a href="#abc">x</a>`,
			want: []string{`href="#abc"`},
		},
		{
			name: "URLs untouched",
			page: `<a href="https://go.dev">g</a><a href="mailto:a@b.c">m</a><img src="data:image/png;base64,AA"/>`,
			want: []string{`href="https://go.dev"`, `href="mailto:a@b.c"`, `src="data:image/png;base64,AA"`},
		},
		{
			name:    "traversal untouched",
			page:    `<img src="../../etc/passwd"/>`,
			want:    []string{`src="../../etc/passwd"`},
			exclude: []string{"file://"},
		},
		{
			name:    "script untouched",
			page:    `<script src="app.js"></script>`,
			want:    []string{`src="app.js"`},
			exclude: []string{"file://"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveRelativePaths(tt.page, dir)
			if err != nil {
				t.Fatalf("ResolveRelativePaths() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("result missing %q:\n%s", w, got)
				}
			}
			for _, x := range tt.exclude {
				if strings.Contains(got, x) {
					t.Errorf("result should not contain %q:\n%s", x, got)
				}
			}
		})
	}
}

func TestResolveRelativePaths_EmptyBaseDir(t *testing.T) {
	t.Parallel()

	page := `<img src="pic.png">`
	got, err := ResolveRelativePaths(page, "")
	if err != nil {
		t.Fatalf("ResolveRelativePaths() error = %v", err)
	}
	if got != page {
		t.Errorf("ResolveRelativePaths() = %q, want unchanged", got)
	}
}

func TestResolveRelativePaths_FullDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := "<!DOCTYPE html>\n<html><head><title>T</title></head><body><img src=\"a.png\"></body></html>"

	got, err := ResolveRelativePaths(page, dir)
	if err != nil {
		t.Fatalf("ResolveRelativePaths() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("doctype lost:\n%s", got)
	}
	if !strings.Contains(got, fileURL(filepath.Join(dir, "a.png"))) {
		t.Errorf("image not resolved:\n%s", got)
	}
	if !strings.Contains(got, "<title>T</title>") {
		t.Errorf("head lost:\n%s", got)
	}
}

func TestResolveRelativePaths_FragmentNotWrapped(t *testing.T) {
	t.Parallel()

	got, err := ResolveRelativePaths(`<p>hi</p>`, t.TempDir())
	if err != nil {
		t.Fatalf("ResolveRelativePaths() error = %v", err)
	}
	if got != "<p>hi</p>" {
		t.Errorf("fragment = %q, want <p>hi</p>", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativePath / TestIsWithin
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"pic.png", true},
		{"./pic.png", true},
		{"sub/dir/pic.png", true},
		{"../pic.png", true},
		{"", false},
		{"#anchor", false},
		{"//cdn.example.com/x.js", false},
		{"http://example.com", false},
		{"file:///tmp/x", false},
		{"mailto:a@b.c", false},
		{"data:image/png;base64,AA", false},
	}

	for _, tt := range tests {
		if got := isRelativePath(tt.path); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(string(filepath.Separator)+"docs", "spec")

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(dir, "a.png"), true},
		{filepath.Join(dir, "sub", "a.png"), true},
		{dir, true},
		{filepath.Join(dir, "..", "a.png"), false},
		{filepath.Join(dir+"x", "a.png"), false},
		{filepath.Join(dir, "..", "..", "etc"), false},
	}

	for _, tt := range tests {
		if got := isWithin(tt.path, dir); got != tt.want {
			t.Errorf("isWithin(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
		}
	}
}
