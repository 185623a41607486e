package sentiment

import (
	"unicode"
	"unicode/utf8"
)

// isWord reports whether r belongs to a word for boundary checks.
// Letters, numbers, combining marks and connector punctuation count,
// apostrophes and hyphens do not
func isWord(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.In(r, unicode.Mn, unicode.Pc)
}

// bounded reports whether s[start:end] sits on word boundaries at both edges
func bounded(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWord(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWord(r) {
			return false
		}
	}
	return true
}
