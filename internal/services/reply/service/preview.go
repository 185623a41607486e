package service

import (
	"chatguard/internal/core/chance"
	"chatguard/internal/core/humanize"
	"chatguard/internal/core/loop"
	"chatguard/internal/core/pacing"
	"chatguard/internal/core/sanitize"
	"chatguard/internal/core/segment"
	"chatguard/internal/core/sentiment"
	"chatguard/internal/services/reply/domain"
)

// Single stage previews. A seed pins the draws for that call only

func (s *Svc) source(seed *uint64) chance.Source {
	if seed != nil {
		return chance.New(*seed)
	}
	return s.src
}

// Sanitize runs the inbound sanitizer and PII redaction
func (s *Svc) Sanitize(text string) domain.SanitizeOutput {
	return domain.SanitizeOutput{
		Text:      sanitize.Clean(text),
		Injection: sanitize.HasInjection(text),
	}
}

// Sentiment triages one message
func (s *Svc) Sentiment(text string) sentiment.Result { return s.triage.Analyze(text) }

// Loop compares two replies and builds the repair directive when they loop
func (s *Svc) Loop(in domain.LoopInput) domain.LoopOutput {
	res := loop.Analyze(in.Previous, in.Candidate, in.History)
	out := domain.LoopOutput{Result: res, Similarity: loop.Similarity(in.Previous, in.Candidate)}
	if res.Looping() {
		out.Repair = loop.RepairPrompt(in.UserText, in.History)
	}
	return out
}

// Humanize rewrites text the way the pipeline would
func (s *Svc) Humanize(in domain.HumanizeInput) domain.TextOutput {
	mood := s.cfg.Mood
	if in.Mood != "" {
		mood = humanize.ParseMood(in.Mood)
	}
	text := humanize.Humanize(in.Text, humanize.Options{Mood: mood, UserName: in.UserName}, s.source(in.Seed))
	return domain.TextOutput{Text: text}
}

// Segment splits text into bubbles, zero options fall back to the configured ones
func (s *Svc) Segment(in domain.SegmentInput) []segment.Bubble {
	o := in.Options
	if o.MaxBubbles <= 0 {
		o.MaxBubbles = s.cfg.Segment.MaxBubbles
	}
	if o.BaseDelayMs <= 0 {
		o.BaseDelayMs = s.cfg.Segment.BaseDelayMs
	}
	if o.MsPerWord <= 0 {
		o.MsPerWord = s.cfg.Segment.MsPerWord
	}
	return segment.Split(in.Text, o, s.source(in.Seed))
}

// Pause computes the wait before the first bubble
func (s *Svc) Pause(in domain.PauseInput) domain.PauseOutput {
	return domain.PauseOutput{PauseMs: pacing.SmartPause(in.Incoming, in.Response, s.source(in.Seed))}
}
