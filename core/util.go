package core

import (
	"html"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// EscapeHTML escapes user supplied text embedded in HTML formatted chat messages.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
