package domain

import (
	"context"
	"time"

	"chatguard/internal/core/pacing"
)

// LLM produces a reply for a conversation
type LLM interface {
	Chat(ctx context.Context, msgs []Message, temperature float64) (string, error)
}

// Sender delivers one bubble to a recipient
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Sleeper waits between bubbles
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a func to Sleeper
type SleepFunc func(time.Duration)

// Sleep calls f
func (f SleepFunc) Sleep(d time.Duration) { f(d) }

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Compose(ctx context.Context, in ComposeInput) (Composed, error)
	Deliver(ctx context.Context, to string, schedule []pacing.Send) Delivered
}
