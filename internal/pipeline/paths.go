package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveRelativePaths turns relative image sources and link targets of a
// rendered page into file:// URLs under baseDir. The PDF renderer loads the
// page from a temporary file, so paths relative to the source document
// would otherwise break. An empty baseDir returns the page unchanged.
//
// Only img[src] and a[href] are rewritten. URLs, anchors, absolute paths
// and paths escaping baseDir are left alone.
func ResolveRelativePaths(page, baseDir string) (string, error) {
	if baseDir == "" {
		return page, nil
	}

	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, fragment, err := parsePage(page)
	if err != nil {
		return "", err
	}
	walkElements(root, func(n *html.Node) {
		switch n.DataAtom {
		case atom.Img:
			resolveAttr(n, "src", absDir)
		case atom.A:
			resolveAttr(n, "href", absDir)
		}
	})
	return renderPage(root, fragment)
}

// parsePage parses a full document, or a fragment in body context when the
// layout does not start with a doctype or <html>.
func parsePage(page string) (root *html.Node, fragment bool, err error) {
	head := strings.ToLower(strings.TrimSpace(page))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		root, err = html.Parse(strings.NewReader(page))
		return root, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(page), body)
	if err != nil {
		return nil, true, err
	}
	root = &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// renderPage serializes root. Fragments render their children only.
func renderPage(root *html.Node, fragment bool) (string, error) {
	var b strings.Builder
	if !fragment {
		if err := html.Render(&b, root); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func walkElements(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, visit)
	}
}

func resolveAttr(n *html.Node, key, dir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		abs := filepath.Join(dir, attr.Val)
		if !isWithin(abs, dir) {
			continue
		}
		n.Attr[i].Val = fileURL(abs)
	}
}

// isRelativePath reports whether p is a local relative path.
func isRelativePath(p string) bool {
	switch {
	case p == "", strings.HasPrefix(p, "#"), strings.HasPrefix(p, "//"):
		return false
	case filepath.IsAbs(p):
		return false
	}
	if u, err := url.Parse(p); err == nil && len(u.Scheme) > 1 {
		return false // http:, mailto:, data:, file: ...; single letters are drive names
	}
	return true
}

// isWithin reports whether path is dir or below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
