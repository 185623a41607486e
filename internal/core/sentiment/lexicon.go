package sentiment

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"chatguard/internal/core/normalize"
)

//go:embed lexicon.yaml
var embedded []byte

// Lexicon holds the triage vocabulary per family
type Lexicon struct {
	Risk      []string `yaml:"risk"`
	Liability []string `yaml:"liability"`
	Positive  []string `yaml:"positive"`
	Urgency   []string `yaml:"urgency"`
}

// ParseLexicon decodes a YAML lexicon and folds every term
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return nil, fmt.Errorf("sentiment: parse lexicon: %w", err)
	}
	lx.Risk = foldTerms(lx.Risk)
	lx.Liability = foldTerms(lx.Liability)
	lx.Positive = foldTerms(lx.Positive)
	lx.Urgency = foldTerms(lx.Urgency)
	if len(lx.Risk)+len(lx.Liability)+len(lx.Positive)+len(lx.Urgency) == 0 {
		return nil, fmt.Errorf("sentiment: lexicon has no terms")
	}
	return &lx, nil
}

// EmbeddedLexicon returns the lexicon compiled into the binary
func EmbeddedLexicon() (*Lexicon, error) { return ParseLexicon(embedded) }

// foldTerms folds, trims and dedupes terms, keeping first-seen order
func foldTerms(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = foldText(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// foldText is the shared folding for terms and input so both sides agree
func foldText(s string) string {
	return apostrophes.Replace(normalize.Fold(s))
}
