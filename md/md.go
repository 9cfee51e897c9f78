package md

import (
	"os"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/mdshow/template"
)

// MD is a Markdown document split into slide fragments.
type MD struct {
	Frontmatter Frontmatter `json:"frontmatter,omitempty"`
	Body        string      `json:"body"`
	Fragments   []string    `json:"fragments,omitempty"`
}

var newlineRep = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseFile parses the Markdown file f.
func ParseFile(f string) (_ *MD, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Parse(b), nil
}

// Parse strips the front matter from b and segments the remaining body into slide fragments.
func Parse(b []byte) *MD {
	fm, body := ParseFrontmatter(newlineRep.Replace(string(b)))
	return &MD{
		Frontmatter: fm,
		Body:        body,
		Fragments:   Segment(body),
	}
}

// ExpandVariables evaluates {{ expr }} in the prose of the body against the front matter keys
// and segments the result again. Fenced code blocks are left verbatim. On error the document
// is left untouched.
func (m *MD) ExpandVariables() (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	expanded, err := expandProse(m.Body, m.Frontmatter)
	if err != nil {
		return err
	}
	m.Body = expanded
	m.Fragments = Segment(expanded)
	return nil
}

// expandProse expands the text between fenced code blocks.
func expandProse(body string, vars map[string]string) (string, error) {
	var (
		b    strings.Builder
		last int
	)
	for _, loc := range codeBlockReg.FindAllStringIndex(body, -1) {
		prose, err := template.Expand(body[last:loc[0]], vars)
		if err != nil {
			return "", err
		}
		b.WriteString(prose)
		b.WriteString(body[loc[0]:loc[1]])
		last = loc[1]
	}
	prose, err := template.Expand(body[last:], vars)
	if err != nil {
		return "", err
	}
	b.WriteString(prose)
	return b.String(), nil
}

// Render renders every fragment in order.
func (m *MD) Render() []string {
	rendered := make([]string, len(m.Fragments))
	for i, f := range m.Fragments {
		rendered[i] = Render(f)
	}
	return rendered
}
