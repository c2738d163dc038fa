package validation

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxQueryLength bounds a search query when no limit is configured.
const DefaultMaxQueryLength = 256

// SanitizeQuery trims input, turns control whitespace into spaces,
// collapses runs of spaces and caps the result at maxLen bytes without
// splitting a rune. An input of only whitespace yields "".
func SanitizeQuery(input string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxQueryLength
	}

	s := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(input)
	s = strings.Join(strings.Fields(s), " ")

	if len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimRight(s[:cut], " ")
	}
	return s
}
