package domain

import (
	"context"
	"time"
)

// CounterStore keeps circuit breaker records keyed by entity
// Implementations must be safe for concurrent use
type CounterStore interface {
	Get(ctx context.Context, key string) (Record, bool, error)
	Set(ctx context.Context, key string, rec Record, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// TripSink receives breaker trips for audit and analytics
type TripSink interface {
	Trip(ctx context.Context, ev TripEvent) error
}

// ProcessFunc is the work SafeProcess guards
type ProcessFunc func(ctx context.Context) (any, error)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Check(ctx context.Context, entityID string) Check
	Reset(ctx context.Context, entityID string)
	ClearAll(ctx context.Context)
	ShouldPropagate(source UpdateSource, dir Direction) bool
	WasRecentlyUpdatedInternally(ctx context.Context, entityID string, window time.Duration) Internal
	RecordSource(ctx context.Context, entityID string, source UpdateSource, details map[string]any)
	SafeProcess(ctx context.Context, entityID string, source UpdateSource, fn ProcessFunc) Outcome
}

// SweeperPort purges expired provenance rows on a timer
type SweeperPort interface {
	Run(ctx context.Context) error
	Sweep(ctx context.Context) (int64, error)
}
