package output

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences from external data before terminal output.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Sanitize makes a server-provided string safe for a single table cell or
// plain-text field: escape sequences are removed and remaining control
// characters (including tabs and newlines) become spaces.
func Sanitize(s string) string {
	s = StripANSI(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}
