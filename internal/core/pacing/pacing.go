// Package pacing models how long a person takes to read a message and start
// typing, and turns that plus the bubble delays into a send schedule
package pacing

import (
	"math"
	"strings"
	"unicode"

	"chatguard/internal/core/chance"
	"chatguard/internal/core/segment"
)

const (
	MinPauseMs = 1200
	MaxPauseMs = 6000

	basePauseMs     = 800
	readWPM         = 400
	typeWPM         = 200
	composeWordsCap = 20
	questionBonusMs = 500
	casualDiscount  = 200
	longBonusMs     = 300
	longWords       = 30
	pauseJitter     = 0.20
)

var interrogatives = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "who": {}, "whom": {}, "whose": {}, "why": {},
	"how": {}, "which": {}, "can": {}, "could": {}, "would": {}, "will": {}, "should": {},
	"do": {}, "does": {}, "did": {}, "is": {}, "are": {}, "am": {}, "was": {}, "were": {},
	"have": {}, "has": {}, "may": {}, "shall": {},
}

// SmartPause returns the wait before the first bubble in milliseconds,
// always within [MinPauseMs, MaxPauseMs]. An omitted ("") response falls back to
// incoming; a blank one counts as zero words to compose
func SmartPause(incoming, response string, src chance.Source) int {
	if response == "" {
		response = incoming
	}
	words := strings.Fields(incoming)
	n := len(words)

	reading := float64(n) / readWPM * 60000
	composing := float64(min(len(strings.Fields(response)), composeWordsCap)) / typeWPM * 60000
	ms := basePauseMs + reading + composing

	if isQuestion(incoming, words) {
		ms += questionBonusMs
	}
	if emojiCount(incoming) >= 2 || n <= 3 {
		ms -= casualDiscount
	}
	if n > longWords {
		ms += longBonusMs
	}

	ms = chance.Jitter(src, ms, pauseJitter)
	return int(math.Round(min(max(ms, MinPauseMs), MaxPauseMs)))
}

func isQuestion(s string, words []string) bool {
	if strings.Contains(s, "?") || strings.Contains(s, "؟") {
		return true
	}
	if len(words) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimFunc(words[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	_, ok := interrogatives[first]
	return ok
}

func emojiCount(s string) int {
	n := 0
	for _, r := range s {
		if (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) {
			n++
		}
	}
	return n
}

// Send is one scheduled bubble, WaitMs is the sleep before sending it
type Send struct {
	Text   string `json:"text"`
	WaitMs int    `json:"wait_ms"`
}

// Schedule folds the initial pause into the first bubble's wait
func Schedule(pauseMs int, bubbles []segment.Bubble) []Send {
	out := make([]Send, 0, len(bubbles))
	for i, b := range bubbles {
		w := b.DelayMs
		if i == 0 {
			w += pauseMs
		}
		out = append(out, Send{Text: b.Text, WaitMs: w})
	}
	return out
}

// Total is the full duration of a schedule
func Total(s []Send) int {
	t := 0
	for _, x := range s {
		t += x.WaitMs
	}
	return t
}
