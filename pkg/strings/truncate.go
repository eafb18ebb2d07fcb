package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the default maximum length for single-line summaries
// of failure descriptions, e.g. in result tables.
const DefaultDescriptionMaxLen = 60

// MinTruncateLen is the minimum maxLen value for TruncateDescription.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// TruncateDescription truncates a string to maxLen runes and ensures single-line output.
// Any run of whitespace, including newlines, collapses into a single space, and "..."
// is appended if the text had to be cut.
//
// If maxLen is less than MinTruncateLen it is clamped to MinTruncateLen.
func TruncateDescription(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Indent prefixes every line of s after the first one with prefix, so that a
// multi-line text can follow a label such as "but: ".
func Indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
