package humanize

import (
	"regexp"
	"strings"
)

// Emojis is the only emoji the humanizer ever appends
var Emojis = []string{"💪", "🔥", "😊"}

// swap is a case-insensitive whole-phrase substitution
type swap struct {
	re  *regexp.Regexp
	out string
}

// phrase compiles a word-bounded, case-insensitive pattern that tolerates
// any run of spaces between words
func phrase(p string) *regexp.Regexp {
	words := strings.Fields(p)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pat := strings.Join(words, `[ \t]+`)
	if isWordByte(p[0]) {
		pat = `\b` + pat
	}
	if isWordByte(p[len(p)-1]) {
		pat += `\b`
	}
	return regexp.MustCompile(`(?i)` + pat)
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func swaps(pairs ...string) []swap {
	out := make([]swap, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, swap{re: phrase(pairs[i]), out: pairs[i+1]})
	}
	return out
}

// negations come first so "it is not" becomes "it isn't" rather than "it's not".
// "I would" and "I will" are left alone, the formal table keys on them
var contractions = swaps(
	"do not", "don't",
	"does not", "doesn't",
	"did not", "didn't",
	"cannot", "can't",
	"can not", "can't",
	"will not", "won't",
	"would not", "wouldn't",
	"should not", "shouldn't",
	"could not", "couldn't",
	"is not", "isn't",
	"are not", "aren't",
	"was not", "wasn't",
	"were not", "weren't",
	"have not", "haven't",
	"has not", "hasn't",
	"I am", "I'm",
	"you are", "you're",
	"we are", "we're",
	"they are", "they're",
	"it is", "it's",
	"that is", "that's",
	"there is", "there's",
	"let us", "let's",
	"we will", "we'll",
	"you will", "you'll",
)

// formal assistant phrasing and its casual replacement, all applied
var formal = swaps(
	"I would be happy to", "I can",
	"I would be glad to", "I can",
	"I'd be happy to", "I can",
	"I'm happy to help", "happy to help",
	"please don't hesitate to reach out", "just message me",
	"please do not hesitate to reach out", "just message me",
	"feel free to reach out", "just message me",
	"I understand your concern", "totally get it",
	"thank you for reaching out", "thanks for messaging",
	"thank you for your patience", "thanks for waiting",
	"is there anything else I can help you with", "anything else",
	"I hope this helps", "hope that helps",
	"great question", "good q",
	"in order to", "to",
	"additionally,", "also",
	"furthermore,", "plus",
)

// abbreviations, only the first matching entry is applied, once
var abbreviations = swaps(
	"going to", "gonna",
	"want to", "wanna",
	"got to", "gotta",
	"kind of", "kinda",
	"let me know", "lmk",
	"by the way", "btw",
	"to be honest", "tbh",
	"probably", "prob",
	"tomorrow", "tmrw",
	"please", "pls",
	"thanks", "thx",
)

var (
	fillers  = []string{"honestly", "tbh", "actually", "btw"}
	openers  = []string{"Hey! ", "Ok so ", "Alright, ", "So "}
	signoffs = []string{"lmk", "cheers", "sound good?"}

	casualStart = regexp.MustCompile(`(?i)^(?:hey|hi|hello|ok|okay|so|alright|yeah|yo|sure)\b`)
	fillerRe    = regexp.MustCompile(`(?i)\b(?:honestly|tbh|actually|btw)\b`)
	paragraphRe = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)*`)
	spaceRuns   = regexp.MustCompile(`[ \t]{2,}`)
	sentenceRe  = regexp.MustCompile(`[^.!?\n]+[.!?]*`)
)
