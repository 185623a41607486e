// Package normalize folds chat text so lexicon and similarity checks compare
// like with like: NFKC, case folded, marks stripped, fullwidth narrowed and
// whitespace collapsed
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"chatguard/internal/core/sanitize"
)

// chains are stateful, one per goroutine at a time
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // combining marks, also Arabic harakat
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// Fold is safe for concurrent use
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = sanitize.Controls(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	fs, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only fails on malformed input, which Controls has removed
		fs = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(fs), " ")
}
