package module

import (
	"time"

	"chatguard/internal/core/humanize"
	"chatguard/internal/core/segment"
	"chatguard/internal/platform/config"
	replysvc "chatguard/internal/services/reply/service"
)

// Options controls the reply pipeline and its model client. Values are read from env
type Options struct {
	Mood          string
	MaxBubbles    int
	BaseDelayMs   int
	MsPerWord     int
	MaxReplyChars int
	FallbackText  string

	// Seed pins the random source when non zero
	Seed uint64

	LLMURL       string
	LLMModel     string
	LLMKey       string
	LLMTimeout   time.Duration
	LLMRetries   int
	LLMMaxTokens int
	Temperature  float64
	RepairTemp   float64
}

// FromConfig reads options using the CORE_REPLY_ and SERVICE_LLM_ prefixes
func FromConfig(cfg config.Conf) Options {
	r := cfg.Prefix("CORE_REPLY_")
	l := cfg.Prefix("SERVICE_LLM_")
	return Options{
		Mood:          r.MayEnum("MOOD", "PROFESSIONAL", "PROFESSIONAL", "CASUAL"),
		MaxBubbles:    r.MayInt("MAX_BUBBLES", 4),
		BaseDelayMs:   r.MayInt("BASE_DELAY_MS", 800),
		MsPerWord:     r.MayInt("MS_PER_WORD", 30),
		MaxReplyChars: r.MayInt("MAX_REPLY_CHARS", 500),
		FallbackText:  r.MayString("FALLBACK_TEXT", ""),
		Seed:          uint64(max(r.MayInt("SEED", 0), 0)),

		LLMURL:       l.MayString("URL", "http://localhost:1234/v1"),
		LLMModel:     l.MayString("MODEL", "gpt-4o-mini"),
		LLMKey:       l.MayString("API_KEY", ""),
		LLMTimeout:   l.MayDuration("TIMEOUT", 30*time.Second),
		LLMRetries:   l.MayInt("RETRIES", 2),
		Temperature:  l.MayFloat64("TEMPERATURE", 0.7),
		RepairTemp:   l.MayFloat64("REPAIR_TEMPERATURE", 0.8),
		LLMMaxTokens: l.MayInt("MAX_TOKENS", 1000),
	}
}

// ServiceConfig maps the options onto the pipeline config
func (o Options) ServiceConfig() replysvc.Config {
	return replysvc.Config{
		Mood: humanize.ParseMood(o.Mood),
		Segment: segment.Options{
			MaxBubbles:  o.MaxBubbles,
			BaseDelayMs: o.BaseDelayMs,
			MsPerWord:   o.MsPerWord,
		},
		MaxReplyChars:     o.MaxReplyChars,
		FallbackText:      o.FallbackText,
		Temperature:       o.Temperature,
		RepairTemperature: o.RepairTemp,
	}
}
