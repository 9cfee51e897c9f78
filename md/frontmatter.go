package md

import "strings"

const fmSep = "---"

// Frontmatter is the flat key/value metadata block at the head of a document.
type Frontmatter map[string]string

// Title returns the title of the presentation, if any.
func (fm Frontmatter) Title() string {
	return fm["title"]
}

// ParseFrontmatter splits doc into front matter and body.
//
// The block opens with a first line consisting solely of "---" and closes at the next "---".
// Each line inside is "key: value"; the value is everything after the first colon.
// Without an opening line or a closing marker it returns an empty Frontmatter and doc unchanged.
func ParseFrontmatter(doc string) (Frontmatter, string) {
	fm := Frontmatter{}
	first, _, _ := strings.Cut(doc, "\n")
	if first != fmSep {
		return fm, doc
	}
	end := strings.Index(doc[len(fmSep):], fmSep)
	if end < 0 {
		return fm, doc
	}
	end += len(fmSep)
	block := strings.TrimSpace(doc[len(fmSep):end])
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		fm[key] = strings.TrimSpace(value)
	}
	return fm, strings.TrimSpace(doc[end+len(fmSep):])
}
