package md

import "strings"

const slideHeaderPrefix = "# "

// Split splits body immediately before every line that starts with a top-level header.
// The first element is the preamble before the first header and may be empty.
// Concatenating the result always yields body.
func Split(body string) []string {
	var (
		fragments []string
		start     int
	)
	for i := 0; i < len(body); {
		if i > start && strings.HasPrefix(body[i:], slideHeaderPrefix) {
			fragments = append(fragments, body[start:i])
			start = i
		}
		next := strings.IndexByte(body[i:], '\n')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return append(fragments, body[start:])
}

// Segment returns the slide fragments of body, dropping empty and whitespace-only ones.
func Segment(body string) []string {
	var fragments []string
	for _, f := range Split(body) {
		if strings.TrimSpace(f) == "" {
			continue
		}
		fragments = append(fragments, f)
	}
	return fragments
}
