package md

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Title returns the text of the first "# " heading of a slide fragment, or "" if there is none.
// Only headings the segmenter splits on count; setext and indented headings are ignored.
func Title(fragment string) string {
	b := []byte(fragment)
	doc := goldmark.New().Parser().Parse(text.NewReader(b))
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 && isSlideHeader(b, h) {
			title = strings.TrimSpace(string(h.Lines().Value(b)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// isSlideHeader reports whether the line of h starts with slideHeaderPrefix.
func isSlideHeader(b []byte, h *ast.Heading) bool {
	if h.Lines().Len() == 0 {
		return false
	}
	start := h.Lines().At(0).Start
	lineStart := bytes.LastIndexByte(b[:start], '\n') + 1
	return bytes.HasPrefix(b[lineStart:], []byte(slideHeaderPrefix))
}
