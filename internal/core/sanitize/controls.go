package sanitize

import (
	"strings"
	"unicode/utf8"
)

// keep reports whether an ASCII control byte survives cleaning
func keep(b byte) bool { return b == '\n' || b == '\r' || b == '\t' }

// Controls drops NUL, C0 controls other than \n \r \t, DEL, C1 controls
// (U+0080..U+009F) and invalid UTF-8 bytes. Clean input is returned as is
func Controls(s string) string {
	if s == "" {
		return s
	}

	i := firstDirty(s)
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])

	for i < len(s) {
		c := s[i]
		switch {
		case c < 0x20:
			if keep(c) {
				b.WriteByte(c)
			}
			i++
		case c == 0x7F:
			i++
		case c < 0x80:
			b.WriteByte(c)
			i++
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			if (r == utf8.RuneError && size == 1) || (r >= 0x80 && r <= 0x9F) {
				i += size
				continue
			}
			b.WriteString(s[i : i+size])
			i += size
		}
	}
	return b.String()
}

// firstDirty returns the offset of the first byte Controls would drop, or len(s)
func firstDirty(s string) int {
	i := 0
	for i < len(s) {
		c := s[i]
		if c < 0x20 {
			if !keep(c) {
				return i
			}
			i++
			continue
		}
		if c == 0x7F {
			return i
		}
		if c < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || (r >= 0x80 && r <= 0x9F) {
			return i
		}
		i += size
	}
	return i
}
