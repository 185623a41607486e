// Package segment splits a reply into one to four chat bubbles and assigns
// each a typing delay. Randomness only touches delays, never the split
package segment

import (
	"math"
	"regexp"
	"strings"

	"chatguard/internal/core/chance"
)

// Bubble is one outgoing message and the pause before it
type Bubble struct {
	Text    string `json:"text"`
	DelayMs int    `json:"delay_ms"`
}

// Options tune Split
type Options struct {
	MaxBubbles  int `json:"max_bubbles" validate:"omitempty,min=1,max=10"`
	BaseDelayMs int `json:"base_delay_ms" validate:"omitempty,min=0"`
	MsPerWord   int `json:"ms_per_word" validate:"omitempty,min=0"`
}

// DefaultOptions returns four bubbles, 800ms base and 30ms per word
func DefaultOptions() Options {
	return Options{MaxBubbles: 4, BaseDelayMs: 800, MsPerWord: 30}
}

const (
	minSplitWords = 15  // below this the reply goes out whole
	maxChunkWords = 25  // sentence packing limit
	minChunkWords = 3   // shorter chunks merge into a neighbour
	minDelayMs    = 400 // floor for non-first bubbles
	delayJitter   = 0.15
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	sentenceEnd    = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// Split divides text into bubbles. The first bubble always has delay 0 since
// the pacer supplies the wait before it
func Split(text string, o Options, src chance.Source) []Bubble {
	d := DefaultOptions()
	if o.MaxBubbles <= 0 {
		o.MaxBubbles = d.MaxBubbles
	}
	if o.BaseDelayMs < 0 {
		o.BaseDelayMs = d.BaseDelayMs
	}
	if o.MsPerWord < 0 {
		o.MsPerWord = d.MsPerWord
	}

	t := strings.TrimSpace(text)
	if wordCount(t) < minSplitWords {
		return []Bubble{{Text: t}}
	}

	chunks := mergeShort(chunk(t))
	if len(chunks) > o.MaxBubbles {
		tail := strings.Join(chunks[o.MaxBubbles-1:], "\n")
		chunks = append(chunks[:o.MaxBubbles-1], tail)
	}

	out := make([]Bubble, len(chunks))
	for i, c := range chunks {
		out[i].Text = c
		if i == 0 {
			continue
		}
		base := float64(o.BaseDelayMs + wordCount(c)*o.MsPerWord)
		ms := int(math.Round(chance.Jitter(src, base, delayJitter)))
		out[i].DelayMs = max(ms, minDelayMs)
	}
	return out
}

// chunk picks the first strategy that yields at least two pieces:
// paragraphs, then lines, then packed sentences
func chunk(t string) []string {
	if ps := nonEmpty(paragraphBreak.Split(t, -1)); len(ps) >= 2 {
		return ps
	}
	if ls := nonEmpty(strings.Split(t, "\n")); len(ls) >= 2 {
		return ls
	}
	if ss := packSentences(t); len(ss) >= 2 {
		return ss
	}
	return []string{t}
}

// packSentences greedily joins sentences until the next would push a chunk past maxChunkWords.
// Chunks are sliced from t so dots inside urls or numbers stay put
func packSentences(t string) []string {
	var out []string
	start, end, words := -1, 0, 0
	for _, sp := range sentences(t) {
		n := wordCount(t[sp[0]:sp[1]])
		if n == 0 {
			continue
		}
		if start >= 0 && words+n > maxChunkWords {
			out = append(out, strings.TrimSpace(t[start:end]))
			start, words = -1, 0
		}
		if start < 0 {
			start = sp[0]
		}
		end = sp[1]
		words += n
	}
	if start >= 0 {
		out = append(out, strings.TrimSpace(t[start:end]))
	}
	return out
}

// sentences returns the byte spans of t cut after terminal punctuation that
// is followed by whitespace or the end of t. The spans cover all of t
func sentences(t string) [][2]int {
	var out [][2]int
	prev := 0
	for _, m := range sentenceEnd.FindAllStringIndex(t, -1) {
		if m[1] > prev {
			out = append(out, [2]int{prev, m[1]})
			prev = m[1]
		}
	}
	if prev < len(t) {
		out = append(out, [2]int{prev, len(t)})
	}
	return out
}

// mergeShort folds chunks under minChunkWords into the previous chunk.
// A short leading chunk has no predecessor and folds into the next one
func mergeShort(cs []string) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		if wordCount(c) < minChunkWords && len(out) > 0 {
			out[len(out)-1] += "\n" + c
			continue
		}
		out = append(out, c)
	}
	if len(out) >= 2 && wordCount(out[0]) < minChunkWords {
		out[1] = out[0] + "\n" + out[1]
		out = out[1:]
	}
	return out
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func wordCount(s string) int { return len(strings.Fields(s)) }
