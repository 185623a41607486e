// Package domain defines the loop guard types and ports
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UpdateSource names the system a state change came from
type UpdateSource string

// Known update sources
const (
	SourceHubSpotWebhook UpdateSource = "hubspot_webhook"
	SourceInternalAPI    UpdateSource = "internal_api"
	SourceAutoReassign   UpdateSource = "auto_reassign"
	SourceManualReassign UpdateSource = "manual_reassign"
	SourceSyncJob        UpdateSource = "sync_job"
	SourceUnknown        UpdateSource = "unknown"
)

// InternalSources are the sources written by this system itself
var InternalSources = []UpdateSource{SourceInternalAPI, SourceAutoReassign, SourceManualReassign}

// KnownSource reports whether s names a source, "unknown" included
func KnownSource(s string) bool {
	return ParseSource(s) != SourceUnknown || strings.EqualFold(strings.TrimSpace(s), string(SourceUnknown))
}

// ParseSource maps s onto a known source, unknown otherwise
func ParseSource(s string) UpdateSource {
	switch u := UpdateSource(strings.ToLower(strings.TrimSpace(s))); u {
	case SourceHubSpotWebhook, SourceInternalAPI, SourceAutoReassign,
		SourceManualReassign, SourceSyncJob:
		return u
	}
	return SourceUnknown
}

// Internal reports whether the source is one of ours
func (u UpdateSource) Internal() bool {
	for _, s := range InternalSources {
		if s == u {
			return true
		}
	}
	return false
}

// Direction is where a sync would send an update
type Direction string

// Sync directions
const (
	ToHubSpot  Direction = "to_hubspot"
	ToSupabase Direction = "to_supabase"
)

// Check is the circuit breaker verdict for one sighting
type Check struct {
	ShouldProcess bool   `json:"should_process" example:"true"`
	Reason        string `json:"reason,omitempty"`
	Count         int    `json:"count" example:"1"`
}

// Internal is the result of the recent internal update lookup
type Internal struct {
	WasInternal bool         `json:"was_internal"`
	Source      UpdateSource `json:"source,omitempty" example:"internal_api"`
}

// Outcome is what SafeProcess hands back to the caller
// Blocked is set whenever Success is false
type Outcome struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Blocked string `json:"blocked,omitempty"`
}

// Record is the windowed counter kept per entity
type Record struct {
	Count       int       `json:"count"`
	WindowStart time.Time `json:"window_start"`
}

// TripEvent is written whenever the breaker refuses a sighting
type TripEvent struct {
	ID       uuid.UUID
	EntityID string
	Count    int
	Reason   string
	At       time.Time
}

// Provenance is one row of the update source log
type Provenance struct {
	EntityID   string
	Source     UpdateSource
	Details    map[string]any
	RecordedAt time.Time
	ExpiresAt  time.Time
}
