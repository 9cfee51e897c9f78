package md

import "strings"

// escapeRep replaces in a single pass, so entities it introduces are never escaped again.
var escapeRep = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape escapes the HTML special characters &, < and >.
func Escape(s string) string {
	return escapeRep.Replace(s)
}
