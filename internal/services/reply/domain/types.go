package domain

import (
	"github.com/google/uuid"

	"chatguard/internal/core/loop"
	"chatguard/internal/core/pacing"
	"chatguard/internal/core/segment"
	"chatguard/internal/core/sentiment"
)

// Message is one chat message sent to the model
type Message struct {
	Role    string
	Content string
}

// Composed is the result of one pipeline run
type Composed struct {
	ID        uuid.UUID        `json:"id"`
	Reply     string           `json:"reply"`
	Bubbles   []segment.Bubble `json:"bubbles"`
	Schedule  []pacing.Send    `json:"schedule"`
	PauseMs   int              `json:"pause_ms"`
	Sentiment sentiment.Result `json:"sentiment"`
	Loop      loop.Result      `json:"loop"`
	Repaired  bool             `json:"repaired"`
	Fallback  bool             `json:"fallback"`
	Issues    []string         `json:"issues,omitempty"`
	Probe     bool             `json:"probe,omitempty"`

	// Blocked carries the guard reason when the run was refused
	Blocked  string `json:"blocked,omitempty"`
	Pipeline int    `json:"pipeline"`
}

// Delivered reports a walked schedule
type Delivered struct {
	Sent    int `json:"sent"`
	WaitMs  int `json:"wait_ms"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// WithFallback replaces the reply with the static fallback text
func (c Composed) WithFallback(text string) Composed {
	c.Reply = text
	c.Fallback = true
	return c
}
