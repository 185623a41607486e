package normalize

import (
	"testing"
)

func TestFold_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"identity ascii", "hello world", "hello world"},
		{"drops invalid bytes", string([]byte{0xff, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}), "foo bar"},
		{"case fold", "ScAm", "scam"},
		{"zero widths", "sp\u200Ba\u200Dm", "spam"},
		{"fullwidth", "\uFF33\uFF34\uFF2F\uFF30 now", "stop now"},
		{"ligature", "o\uFB03ce", "office"},
		{"keeps punctuation", "asap!!", "asap!!"},
		{"collapses whitespace", "  a\t\tb\n\nc   d ", "a b c d"},
		{"arabic harakat", "\u062D\u064E\u0631\u064E\u0627\u0645", "\u062D\u0631\u0627\u0645"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fold(tc.in)
			if got != tc.out {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := Fold(got); again != got {
				t.Fatalf("Fold not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFold_UnicodeSpaces(t *testing.T) {
	in := " \t a\u00a0\u3000b \u2003 c \r\n "
	if got := Fold(in); got != "a b c" {
		t.Fatalf("Fold(%q) = %q", in, got)
	}
}
