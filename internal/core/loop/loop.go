// Package loop spots a reply that repeats the previous one and builds the
// directive for a corrective second model call
package loop

import (
	"regexp"
	"strings"
)

// Status is the loop verdict
type Status string

const (
	StatusOK       Status = "OK"
	StatusLoop     Status = "LOOP_DETECTED"
	StatusEscalate Status = "ESCALATE_TO_HUMAN"
)

// SimilarityCutoff is the similarity above which two replies count as a loop
const SimilarityCutoff = 85

// reported depth for the repeated apology heuristic
const apologyDepth = 2

// Result is the outcome of Analyze
type Result struct {
	Status          Status  `json:"status"`
	Confidence      float64 `json:"confidence"`
	SimilarityScore *int    `json:"similarity_score,omitempty"`
	LoopDepth       int     `json:"loop_depth,omitempty"`
}

// Looping reports whether the verdict asks for a repair
func (r Result) Looping() bool { return r.Status != StatusOK }

var apologyRe = regexp.MustCompile(`(?i)\b(?:sorry|my bad|didn'?t catch that|pardon|forgive me|apologi(?:es|ze|se))\b`)

// Analyze compares the previous outgoing reply with the candidate reply.
// history is accepted for symmetry with RepairPrompt and does not affect the verdict
func Analyze(previous, candidate string, _ []Turn) Result {
	if strings.TrimSpace(previous) == "" || strings.TrimSpace(candidate) == "" {
		return Result{Status: StatusOK}
	}
	sim := Similarity(previous, candidate)
	if sim > SimilarityCutoff {
		return Result{Status: StatusLoop, Confidence: float64(sim) / 100, SimilarityScore: &sim}
	}
	if apologyRe.MatchString(previous) && apologyRe.MatchString(candidate) {
		return Result{Status: StatusLoop, Confidence: 0.9, LoopDepth: apologyDepth}
	}
	return Result{Status: StatusOK}
}

// Escalate is the verdict when a repaired reply still loops
func Escalate(r Result) Result {
	r.Status = StatusEscalate
	return r
}
