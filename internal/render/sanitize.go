package render

import (
	"strings"
	"unicode"
)

// sanitize replaces control characters so process names cannot inject
// terminal escape sequences into the frame.
func sanitize(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, s)
}
