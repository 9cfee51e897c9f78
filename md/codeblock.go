package md

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CodeBlock is a fenced code block pulled out of a slide before inline rendering.
type CodeBlock struct {
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

var (
	codeBlockReg   = regexp.MustCompile("```(\\w+)?\\n((?s:.*?))```")
	placeholderReg = regexp.MustCompile("\x00CODE(\\d+)\x00")
)

// placeholder returns the sentinel that stands in for the n-th code block.
func placeholder(n int) string {
	return fmt.Sprintf("\x00CODE%d\x00", n)
}

// HTML returns the markup of the code block. The content is escaped, never interpreted.
func (c *CodeBlock) HTML() string {
	var b strings.Builder
	b.WriteString("<pre><code")
	if c.Language != "" {
		b.WriteString(` class="language-`)
		b.WriteString(c.Language)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(Escape(c.Content))
	b.WriteString("</code></pre>")
	return b.String()
}

// ExtractCodeBlocks replaces every fenced code block in s with a placeholder and returns
// the blocks in order of appearance. An opening fence without a closing one is left as is.
func ExtractCodeBlocks(s string) (string, []*CodeBlock) {
	matches := codeBlockReg.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}
	var (
		b      strings.Builder
		blocks []*CodeBlock
		last   int
	)
	for i, m := range matches {
		b.WriteString(s[last:m[0]])
		block := &CodeBlock{
			Content: s[m[4]:m[5]],
		}
		if m[2] >= 0 {
			block.Language = s[m[2]:m[3]]
		}
		blocks = append(blocks, block)
		b.WriteString(placeholder(i))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), blocks
}

// RestoreCodeBlocks substitutes the rendered blocks for their placeholders.
// Inserted markup is not scanned again, so code that happens to contain a placeholder stays intact.
func RestoreCodeBlocks(s string, blocks []*CodeBlock) string {
	if len(blocks) == 0 {
		return s
	}
	return placeholderReg.ReplaceAllStringFunc(s, func(match string) string {
		n, err := strconv.Atoi(match[len("\x00CODE") : len(match)-1])
		if err != nil || n >= len(blocks) {
			return match
		}
		return blocks[n].HTML()
	})
}
