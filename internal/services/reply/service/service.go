// Package service runs the reply pipeline: sanitize, triage, generate, repair,
// filter, humanize, segment and pace
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"chatguard/internal/core/chance"
	"chatguard/internal/core/humanize"
	"chatguard/internal/core/loop"
	"chatguard/internal/core/pacing"
	"chatguard/internal/core/sanitize"
	"chatguard/internal/core/segment"
	"chatguard/internal/core/sentiment"
	"chatguard/internal/core/version"
	perr "chatguard/internal/platform/errors"
	"chatguard/internal/platform/logger"
	guarddom "chatguard/internal/services/guard/domain"
	"chatguard/internal/services/reply/domain"
)

// Service is the reply service surface
type Service interface {
	domain.ServicePort

	Sanitize(text string) domain.SanitizeOutput
	Sentiment(text string) sentiment.Result
	Loop(in domain.LoopInput) domain.LoopOutput
	Humanize(in domain.HumanizeInput) domain.TextOutput
	Segment(in domain.SegmentInput) []segment.Bubble
	Pause(in domain.PauseInput) domain.PauseOutput
}

// Model prompts and canned text
const (
	DefaultPersona = "You are Mark, a friendly fitness coach chatting with a lead on WhatsApp. " +
		"Keep replies short, warm and human. Ask one question at a time."

	DeescalationPersona = "You are Mark, a helpful support agent.\n" +
		"The user seems upset. Your goal is to DE-ESCALATE.\n" +
		"Do NOT sell. Do NOT be pushy.\n" +
		"Simply apologize if needed, validate their feelings, and ask how you can help fix it.\n" +
		"Keep it short and human."

	DefaultFallback = "That sounds like a great goal! I'd love to help you build a plan for that. " +
		"Quick question - have you tried personal training before, or would this be your first time?"
)

// leaked template headers that must never reach a lead
var leakMarkers = []string{"TEMPLATE 1:", "Templates for reaching out"}

// Config tunes the pipeline
type Config struct {
	Mood              humanize.Mood
	Segment           segment.Options
	MaxReplyChars     int
	FallbackText      string
	Temperature       float64
	RepairTemperature float64
}

func (c Config) withDefaults() Config {
	if c.Mood == "" {
		c.Mood = humanize.Professional
	}
	d := segment.DefaultOptions()
	if c.Segment.MaxBubbles <= 0 {
		c.Segment.MaxBubbles = d.MaxBubbles
	}
	if c.Segment.BaseDelayMs <= 0 {
		c.Segment.BaseDelayMs = d.BaseDelayMs
	}
	if c.Segment.MsPerWord <= 0 {
		c.Segment.MsPerWord = d.MsPerWord
	}
	if c.MaxReplyChars <= 0 {
		c.MaxReplyChars = 500
	}
	if strings.TrimSpace(c.FallbackText) == "" {
		c.FallbackText = DefaultFallback
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.RepairTemperature <= 0 {
		c.RepairTemperature = 0.8
	}
	return c
}

// Svc implements Service
type Svc struct {
	cfg     Config
	llm     domain.LLM
	guard   guarddom.ServicePort
	sender  domain.Sender
	sleeper domain.Sleeper
	src     chance.Source
	triage  *sentiment.Classifier
	log     logger.Logger
	newID   func() uuid.UUID
}

// Option configures Svc
type Option func(*Svc)

// WithGuard routes runs carrying a lead id through the loop guard
func WithGuard(g guarddom.ServicePort) Option { return func(s *Svc) { s.guard = g } }

// WithSender sets the bubble sender used by Deliver
func WithSender(snd domain.Sender) Option { return func(s *Svc) { s.sender = snd } }

// WithSleeper replaces the wall clock sleep used by Deliver
func WithSleeper(sl domain.Sleeper) Option { return func(s *Svc) { s.sleeper = sl } }

// WithSource sets the random source for humanize, segment and pacing
func WithSource(src chance.Source) Option { return func(s *Svc) { s.src = src } }

// WithClassifier replaces the default sentiment classifier
func WithClassifier(c *sentiment.Classifier) Option { return func(s *Svc) { s.triage = c } }

// WithLogger sets the service logger
func WithLogger(l logger.Logger) Option { return func(s *Svc) { s.log = l } }

// WithIDs replaces the compose id generator
func WithIDs(fn func() uuid.UUID) Option { return func(s *Svc) { s.newID = fn } }

// New constructs the service. llm is required
func New(cfg Config, llm domain.LLM, opts ...Option) *Svc {
	if llm == nil {
		panic("reply.Service requires a non nil LLM")
	}
	s := &Svc{
		cfg:     cfg.withDefaults(),
		llm:     llm,
		sleeper: domain.SleepFunc(sleepWall),
		log:     *logger.Named("reply"),
		newID:   uuid.New,
	}
	for _, o := range opts {
		o(s)
	}
	if s.src == nil {
		s.src = chance.Crypto()
	}
	if s.triage == nil {
		s.triage = sentiment.Default()
	}
	return s
}

// Config returns the effective configuration
func (s *Svc) Config() Config { return s.cfg }

// Compose runs the full pipeline. With a lead id and a guard the run is
// refused when the lead trips the breaker or the event is a webhook echo
func (s *Svc) Compose(ctx context.Context, in domain.ComposeInput) (domain.Composed, error) {
	id := s.newID()
	if in.LeadID == "" || s.guard == nil {
		return s.run(ctx, id, in)
	}

	var (
		out    domain.Composed
		runErr error
	)
	res := s.guard.SafeProcess(ctx, in.LeadID, guarddom.ParseSource(in.Source), func(ctx context.Context) (any, error) {
		out, runErr = s.run(ctx, id, in)
		return out, runErr
	})
	if runErr != nil {
		return domain.Composed{}, runErr
	}
	if !res.Success {
		s.log.Warn().Str("lead_id", in.LeadID).Str("reason", res.Blocked).Msg("reply blocked by guard")
		return domain.Composed{ID: id, Blocked: res.Blocked, Pipeline: version.PipelineVersion}, nil
	}
	return out, nil
}

func (s *Svc) run(ctx context.Context, id uuid.UUID, in domain.ComposeInput) (domain.Composed, error) {
	out := domain.Composed{ID: id, Pipeline: version.PipelineVersion}
	log := s.log.With().Str("compose_id", id.String()).Logger()

	incoming := sanitize.Input(in.Incoming)
	out.Probe = sanitize.DetectSkillLeak(incoming).HasLeak

	out.Sentiment = s.triage.Analyze(incoming)
	persona := in.Persona
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	if out.Sentiment.Sentiment == sentiment.Risk {
		log.Info().Strs("triggers", out.Sentiment.Triggers).Msg("risk detected, de-escalating")
		persona = DeescalationPersona
	}

	raw, err := s.llm.Chat(ctx, []domain.Message{
		{Role: "system", Content: persona},
		{Role: "user", Content: incoming},
	}, s.cfg.Temperature)
	if err != nil {
		return domain.Composed{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "llm chat failed")
	}

	out.Loop = loop.Analyze(in.PreviousReply, raw, in.History)
	if out.Loop.Looping() {
		log.Info().Float64("confidence", out.Loop.Confidence).Msg("loop detected, repairing")
		repaired, err := s.llm.Chat(ctx, []domain.Message{
			{Role: "system", Content: loop.RepairPrompt(in.Incoming, in.History)},
			{Role: "user", Content: incoming},
		}, s.cfg.RepairTemperature)
		if err != nil {
			log.Warn().Err(err).Msg("repair call failed, using fallback")
			return s.finish(out.WithFallback(s.cfg.FallbackText), in), nil
		}
		raw = repaired
		out.Repaired = true
		if again := loop.Analyze(in.PreviousReply, raw, in.History); again.Looping() {
			out.Loop = loop.Escalate(again)
		}
	}

	cleaned := sanitize.Clean(raw)
	if cleaned != raw {
		log.Warn().Msg("model output sanitized")
	}
	filtered := sanitize.Response(sanitize.Scrub(cleaned))
	if safety := sanitize.Validate(filtered); !safety.Safe {
		out.Issues = safety.Issues
	}
	if leaked(filtered) || utf8.RuneCountInString(filtered) > s.cfg.MaxReplyChars {
		log.Error().Int("chars", utf8.RuneCountInString(filtered)).Msg("blocked leaked or long response")
		return s.finish(out.WithFallback(s.cfg.FallbackText), in), nil
	}

	mood := s.cfg.Mood
	if in.Mood != "" {
		mood = humanize.ParseMood(in.Mood)
	}
	out.Reply = humanize.Humanize(sanitize.WhatsApp(filtered), humanize.Options{Mood: mood, UserName: in.UserName}, s.src)
	if strings.TrimSpace(out.Reply) == "" {
		log.Warn().Msg("empty reply after filtering, using fallback")
		out = out.WithFallback(s.cfg.FallbackText)
	}
	return s.finish(out, in), nil
}

// finish segments the reply and computes the pause and schedule
func (s *Svc) finish(out domain.Composed, in domain.ComposeInput) domain.Composed {
	out.Bubbles = segment.Split(out.Reply, s.cfg.Segment, s.src)
	out.PauseMs = pacing.SmartPause(in.Incoming, out.Reply, s.src)
	out.Schedule = pacing.Schedule(out.PauseMs, out.Bubbles)
	return out
}

func leaked(s string) bool {
	for _, m := range leakMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
