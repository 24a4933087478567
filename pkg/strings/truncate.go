package strings

import (
	"strings"
)

// DefaultDetailMaxLen is the default maximum length for detail columns in
// formatted output. Shared across packages for consistent truncation.
const DefaultDetailMaxLen = 60

// MinTruncateLen is the minimum maxLen value for TruncateDetail. Values
// smaller than this would not leave room for content plus "...".
const MinTruncateLen = 4

// TruncateDetail truncates a string to maxLen characters and ensures
// single-line output: newlines become spaces, runs of whitespace
// collapse, and "..." marks truncation. Operates on runes so multi-byte
// characters are never split.
func TruncateDetail(s string, maxLen int) string {
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
