// Package sentiment triages an inbound message as RISK, POSITIVE or NEUTRAL.
// Matching is deliberately coarse: whole-word lexicon terms over folded text,
// so polysemous words like "stop" in "I'll stop by" still count as risk
package sentiment

import (
	"sort"
	"sync"
)

// Sentiment is the triage category
type Sentiment string

const (
	Risk     Sentiment = "RISK"
	Positive Sentiment = "POSITIVE"
	Neutral  Sentiment = "NEUTRAL"
)

// Result is the outcome of Analyze
type Result struct {
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
	Triggers  []string  `json:"triggers"`
}

type family uint8

const (
	famRisk family = iota
	famLiability
	famPositive
	famUrgency
)

// Classifier matches all lexicon families in one pass. Safe for concurrent use
type Classifier struct {
	ac    *automaton
	terms []string
	fam   []family
}

// New compiles a classifier for lx
func New(lx *Lexicon) *Classifier {
	c := &Classifier{}
	add := func(f family, ts []string) {
		for _, t := range ts {
			c.terms = append(c.terms, t)
			c.fam = append(c.fam, f)
		}
	}
	add(famRisk, lx.Risk)
	add(famLiability, lx.Liability)
	add(famPositive, lx.Positive)
	add(famUrgency, lx.Urgency)
	c.ac = compile(c.terms)
	return c
}

var (
	defaultOnce sync.Once
	defaultC    *Classifier
)

// Default returns the classifier for the embedded lexicon
func Default() *Classifier {
	defaultOnce.Do(func() {
		lx, err := EmbeddedLexicon()
		if err != nil {
			panic(err)
		}
		defaultC = New(lx)
	})
	return defaultC
}

// Analyze classifies text with the default classifier
func Analyze(text string) Result { return Default().Analyze(text) }

type hit struct {
	start int
	term  string
	fam   family
}

// Analyze classifies text. RISK wins over POSITIVE which wins over NEUTRAL.
// Triggers are the matched terms of the winning category in order of first occurrence
func (c *Classifier) Analyze(text string) Result {
	folded := foldText(text)
	if folded == "" {
		return neutral()
	}

	var hits []hit
	c.ac.scan(folded, func(start, end, id int) {
		if bounded(folded, start, end) {
			hits = append(hits, hit{start: start, term: c.terms[id], fam: c.fam[id]})
		}
	})
	if len(hits) == 0 {
		return neutral()
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	var risk, pos []string
	urgent := false
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		if _, dup := seen[h.term]; dup {
			continue
		}
		seen[h.term] = struct{}{}
		switch h.fam {
		case famRisk, famLiability:
			risk = append(risk, h.term)
		case famUrgency:
			urgent = true
			pos = append(pos, h.term)
		default:
			pos = append(pos, h.term)
		}
	}

	switch {
	case len(risk) > 0:
		return Result{Sentiment: Risk, Score: 1.0, Triggers: risk}
	case urgent:
		return Result{Sentiment: Positive, Score: 1.0, Triggers: pos}
	case len(pos) > 0:
		return Result{Sentiment: Positive, Score: 0.8, Triggers: pos}
	}
	return neutral()
}

func neutral() Result { return Result{Sentiment: Neutral, Score: 0, Triggers: []string{}} }
