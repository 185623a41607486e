package humanize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"chatguard/internal/core/sanitize"
)

func contract(s string, _ float64, _ Options) string {
	for _, c := range contractions {
		s = replaceCased(c.re, s, c.out)
	}
	return s
}

func dropTrailingPeriod(s string, _ float64, _ Options) string {
	t := strings.TrimRight(s, " \t\n")
	if len(strings.Fields(t)) >= 12 || !strings.HasSuffix(t, ".") || strings.HasSuffix(t, "..") {
		return s
	}
	return t[:len(t)-1]
}

func lowercaseLead(s string, _ float64, _ Options) string {
	return lowerLead(s)
}

func insertFiller(s string, u float64, _ Options) string {
	if fillerRe.MatchString(s) {
		return s
	}
	f := fillers[pick(u, len(fillers))]
	if i := strings.Index(s, ", "); i >= 0 {
		return s[:i+1] + " " + f + s[i+1:]
	}
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+2] + f + " " + lowerLead(s[i+2:])
	}
	return s
}

func addOpener(s string, u float64, _ Options) string {
	if casualStart.MatchString(strings.TrimSpace(s)) {
		return s
	}
	op := openers[pick(u, len(openers))]
	if strings.HasPrefix(op, "Hey") {
		return op + s
	}
	return op + lowerLead(s)
}

func addSignoff(s string, u float64, _ Options) string {
	t := strings.TrimRight(s, " \t\n")
	if strings.HasSuffix(t, "?") || strings.HasSuffix(t, "!") {
		return s
	}
	lt := strings.ToLower(t)
	for _, so := range signoffs {
		if strings.HasSuffix(lt, so) {
			return s
		}
	}
	return t + " " + signoffs[pick(u, len(signoffs))]
}

func addEmoji(s string, u float64, _ Options) string {
	t := strings.TrimRight(s, " \t\n")
	if r, _ := utf8.DecodeLastRuneInString(t); isEmoji(r) {
		return s
	}
	return t + " " + Emojis[pick(u, len(Emojis))]
}

func addEllipsis(s string, _ float64, _ Options) string {
	if strings.Contains(s, "...") || strings.Contains(s, "…") {
		return s
	}
	if i := strings.Index(s, ", "); i >= 0 {
		return s[:i] + "..." + s[i+1:]
	}
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i] + "..." + s[i+1:]
	}
	return s
}

func doubleExclaim(s string, _ float64, _ Options) string {
	if strings.Contains(s, "!!") {
		return s
	}
	return strings.Replace(s, "!", "!!", 1)
}

func addName(s string, u float64, o Options) string {
	if o.UserName == "" || strings.Contains(strings.ToLower(s), strings.ToLower(o.UserName)) {
		return s
	}
	if pick(u, 2) == 0 {
		return o.UserName + ", " + lowerLead(s)
	}
	return o.UserName + "! " + s
}

func abbreviate(s string, _ float64, _ Options) string {
	for _, a := range abbreviations {
		if loc := a.re.FindStringIndex(s); loc != nil {
			return s[:loc[0]] + matchCase(s[loc[0]:loc[1]], a.out) + s[loc[1]:]
		}
	}
	return s
}

func deformalize(s string, _ float64, _ Options) string {
	for _, f := range formal {
		s = replaceCased(f.re, s, f.out)
	}
	return s
}

// typo transposes the two middle letters of one plain ASCII word of 4+ letters
func typo(s string, u float64, _ Options) string {
	type span struct{ start, end int }
	var cands []span
	for start := 0; start < len(s); {
		for start < len(s) && isSpaceByte(s[start]) {
			start++
		}
		end := start
		for end < len(s) && !isSpaceByte(s[end]) {
			end++
		}
		if end > start {
			ws, we := trimPunct(s, start, end)
			if we-ws >= 4 && asciiLetters(s[ws:we]) {
				cands = append(cands, span{ws, we})
			}
		}
		start = end
	}
	if len(cands) == 0 {
		return s
	}
	c := cands[pick(u, len(cands))]
	w := []byte(s[c.start:c.end])
	m := len(w)/2 - 1
	w[m], w[m+1] = w[m+1], w[m]
	return s[:c.start] + string(w) + s[c.end:]
}

// fragment breaks the first sentence longer than eight words at about 60% of its length
func fragment(s string, _ float64, _ Options) string {
	for _, loc := range sentenceRe.FindAllStringIndex(s, -1) {
		sent := s[loc[0]:loc[1]]
		words := strings.Fields(sent)
		if len(words) <= 8 {
			continue
		}
		k := int(float64(len(words)) * 0.6)
		off := wordOffset(sent, k)
		if off <= 0 {
			return s
		}
		left := strings.TrimRight(sent[:off], " \t,;:-")
		if strings.HasSuffix(left, ".") || strings.HasSuffix(left, "!") || strings.HasSuffix(left, "?") {
			return s
		}
		return s[:loc[0]] + left + ". " + upperLead(sent[off:]) + s[loc[1]:]
	}
	return s
}

func collapseParagraphs(s string, _ float64, _ Options) string {
	return paragraphRe.ReplaceAllLiteralString(s, "\n")
}

// helpers

// replaceCased replaces every match keeping a capital first letter capital
func replaceCased(re *regexp.Regexp, s, out string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string { return matchCase(m, out) })
}

func matchCase(orig, repl string) string {
	r, _ := utf8.DecodeRuneInString(orig)
	if unicode.IsUpper(r) {
		return upperLead(repl)
	}
	return repl
}

func upperLead(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// lowerLead lowercases the first letter unless the first word is a form of "I"
func lowerLead(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || !unicode.IsUpper(r) {
		return s
	}
	if r == 'I' && (len(s) == 1 || s[1] == ' ' || s[1] == '\'') {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// wordOffset returns the byte offset of the k-th whitespace separated word
func wordOffset(s string, k int) int {
	n := -1
	inWord := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
			if n == k {
				return i
			}
		}
	}
	return -1
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func trimPunct(s string, start, end int) (int, int) {
	const punct = ".,!?;:\"'()"
	for start < end && strings.IndexByte(punct, s[start]) >= 0 {
		start++
	}
	for end > start && strings.IndexByte(punct, s[end-1]) >= 0 {
		end--
	}
	return start, end
}

func asciiLetters(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i]|0x20 < 'a' || w[i]|0x20 > 'z' {
			return false
		}
	}
	return true
}

func isEmoji(r rune) bool {
	return (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF)
}

// firstName keeps the first word of a display name, cleaned of control characters
func firstName(name string) string {
	f := strings.Fields(sanitize.Controls(name))
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
