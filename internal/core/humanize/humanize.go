// Package humanize rewrites a model reply so it reads like someone typing on
// a phone. Fifteen transforms run in a fixed order, each behind its own draw
// from a chance.Source, so a scripted source reproduces any output exactly
package humanize

import (
	"strings"

	"chatguard/internal/core/chance"
)

// Mood selects how casual the rewrite gets
type Mood string

const (
	Professional Mood = "PROFESSIONAL"
	Casual       Mood = "CASUAL"
)

// casualFactor scales the casual family of transforms under Casual
const casualFactor = 1.5

// ParseMood maps a label to a Mood, defaulting to Professional
func ParseMood(s string) Mood {
	if strings.EqualFold(strings.TrimSpace(s), string(Casual)) {
		return Casual
	}
	return Professional
}

// Options tune one Humanize call
type Options struct {
	Mood     Mood
	UserName string
}

// step is one gated transform. u is the draw rescaled to [0,1) within the
// gate and picks among variants
type step struct {
	name   string
	p      float64
	casual bool
	apply  func(s string, u float64, o Options) string
}

var steps = []step{
	{"contractions", 0.95, false, contract},
	{"trailing_period", 0.80, false, dropTrailingPeriod},
	{"lowercase_lead", 0.10, true, lowercaseLead},
	{"filler", 0.08, true, insertFiller},
	{"opener", 0.15, true, addOpener},
	{"signoff", 0.12, true, addSignoff},
	{"emoji", 0.08, true, addEmoji},
	{"ellipsis", 0.10, true, addEllipsis},
	{"exclaim", 0.15, true, doubleExclaim},
	{"name", 0.20, false, addName},
	{"abbreviation", 0.10, true, abbreviate},
	{"formal", 0.90, false, deformalize},
	{"typo", 0.05, false, typo},
	{"fragment", 0.08, true, fragment},
	{"paragraphs", 0.30, false, collapseParagraphs},
}

// Steps is the number of draws one non-empty Humanize call consumes
var Steps = len(steps)

// Humanize applies the transform chain to text. Every step takes exactly one
// draw from src whether or not it can apply. Empty input returns "" with no draws
func Humanize(text string, o Options, src chance.Source) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if o.Mood == "" {
		o.Mood = Professional
	}
	o.UserName = firstName(o.UserName)

	s := text
	for _, st := range steps {
		p := st.p
		if st.casual && o.Mood == Casual {
			p *= casualFactor
		}
		r := src.Float64()
		if r < p {
			s = st.apply(s, r/p, o)
		}
	}
	s = spaceRuns.ReplaceAllLiteralString(s, " ")
	return strings.TrimSpace(s)
}

// pick maps u in [0,1) to an index into n variants
func pick(u float64, n int) int {
	i := int(u * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
