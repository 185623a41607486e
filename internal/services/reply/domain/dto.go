// Package domain defines the reply pipeline types, ports and DTOs
package domain

import (
	"chatguard/internal/core/loop"
	"chatguard/internal/core/segment"
)

// ComposeInput is the request body for a full pipeline run
type ComposeInput struct {
	Incoming      string      `json:"incoming" validate:"required,max=8000"`
	PreviousReply string      `json:"previous_reply,omitempty" validate:"max=8000"`
	History       []loop.Turn `json:"history,omitempty" validate:"max=50,dive"`
	UserName      string      `json:"user_name,omitempty" validate:"max=100"`
	Mood          string      `json:"mood,omitempty" validate:"omitempty,oneof=PROFESSIONAL CASUAL"`
	// Persona is the system prompt used when the message is not risky
	Persona string `json:"persona,omitempty" validate:"max=8000"`

	// LeadID routes the run through the loop guard when set
	LeadID string `json:"lead_id,omitempty" validate:"max=200,ident"`
	Source string `json:"source,omitempty" validate:"omitempty,oneof=hubspot_webhook internal_api auto_reassign manual_reassign sync_job unknown"`

	// To delivers the bubbles after composing when set
	To string `json:"to,omitempty" validate:"max=200"`
}

// TextInput carries a single text
type TextInput struct {
	Text string `json:"text" validate:"max=8000"`
}

// TextOutput carries a single text
type TextOutput struct {
	Text string `json:"text"`
}

// SanitizeOutput is the result of the sanitize preview
type SanitizeOutput struct {
	Text      string `json:"text"`
	Injection bool   `json:"injection"`
}

// LoopInput is the request body for the loop preview
type LoopInput struct {
	Previous  string      `json:"previous" validate:"max=8000"`
	Candidate string      `json:"candidate" validate:"max=8000"`
	History   []loop.Turn `json:"history,omitempty" validate:"max=50,dive"`
	UserText  string      `json:"user_text,omitempty" validate:"max=8000"`
}

// LoopOutput is the loop verdict plus the repair directive when looping
type LoopOutput struct {
	loop.Result
	Similarity int    `json:"similarity"`
	Repair     string `json:"repair,omitempty"`
}

// HumanizeInput is the request body for the humanize preview
type HumanizeInput struct {
	Text     string  `json:"text" validate:"max=8000"`
	Mood     string  `json:"mood,omitempty" validate:"omitempty,oneof=PROFESSIONAL CASUAL"`
	UserName string  `json:"user_name,omitempty" validate:"max=100"`
	Seed     *uint64 `json:"seed,omitempty"`
}

// SegmentInput is the request body for the segment preview
type SegmentInput struct {
	Text    string          `json:"text" validate:"max=8000"`
	Options segment.Options `json:"options"`
	Seed    *uint64         `json:"seed,omitempty"`
}

// PauseInput is the request body for the pause preview
type PauseInput struct {
	Incoming string  `json:"incoming" validate:"max=8000"`
	Response string  `json:"response,omitempty" validate:"max=8000"`
	Seed     *uint64 `json:"seed,omitempty"`
}

// PauseOutput is the smart pause in milliseconds
type PauseOutput struct {
	PauseMs int `json:"pause_ms"`
}
