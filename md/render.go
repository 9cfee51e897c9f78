package md

import (
	"regexp"
	"strings"
)

// rule is a single line-oriented substitution.
type rule struct {
	reg  *regexp.Regexp
	repl string
}

func (r rule) apply(s string) string {
	return r.reg.ReplaceAllString(s, r.repl)
}

// stage is one pure text transform of the rendering pipeline.
type stage func(string) string

var (
	headerRules = []rule{
		// longest prefix first, "### " must never be taken as "# "
		{regexp.MustCompile(`(?m)^### (.+)$`), "<h3>${1}</h3>"},
		{regexp.MustCompile(`(?m)^## (.+)$`), "<h2>${1}</h2>"},
		{regexp.MustCompile(`(?m)^# (.+)$`), "<h1>${1}</h1>"},
	}
	emphasisRules = []rule{
		{regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), "<b><i>${1}</i></b>"},
		{regexp.MustCompile(`\*\*(.+?)\*\*`), "<b>${1}</b>"},
		{regexp.MustCompile(`\*(.+?)\*`), "<i>${1}</i>"},
		{regexp.MustCompile(`___(.+?)___`), "<b><i>${1}</i></b>"},
		{regexp.MustCompile(`__(.+?)__`), "<b>${1}</b>"},
		{regexp.MustCompile(`_(.+?)_`), "<i>${1}</i>"},
	}
	listItemRule   = rule{regexp.MustCompile(`(?m)^\s*[-*+] (.+)$`), "<ul>\n<li>${1}</li>\n</ul>"}
	paragraphRule  = rule{regexp.MustCompile(`(?m)^\s*(.+)$`), "<p>${1}</p>"}
	inlineCodeRule = rule{regexp.MustCompile("`([^`]+)`"), "<code>${1}</code>"}
)

// stages is the fixed rule order. Later stages must not corrupt tags produced by earlier ones.
var stages = []stage{
	Escape,
	renderHeaders,
	renderEmphasis,
	renderLists,
	paragraphRule.apply,
	inlineCodeRule.apply,
}

func renderHeaders(s string) string {
	for _, r := range headerRules {
		s = r.apply(s)
	}
	return s
}

func renderEmphasis(s string) string {
	for _, r := range emphasisRules {
		s = r.apply(s)
	}
	return s
}

// renderLists wraps every list line in its own list and then merges adjacent lists.
func renderLists(s string) string {
	s = listItemRule.apply(s)
	return strings.ReplaceAll(s, "</ul>\n<ul>", "")
}

// Render converts the Markdown of one slide into HTML.
//
// Every non-empty line is wrapped in a paragraph, including lines that already became
// headings or list markup, so a heading renders as <p><h1>..</h1></p>.
func Render(src string) string {
	s, blocks := ExtractCodeBlocks(src)
	for _, st := range stages {
		s = st(s)
	}
	return RestoreCodeBlocks(s, blocks)
}
