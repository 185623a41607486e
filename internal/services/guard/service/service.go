// Package service contains the loop guard workflows
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatguard/internal/modkit/repokit"
	"chatguard/internal/platform/logger"
	"chatguard/internal/services/guard/domain"
	"chatguard/internal/services/guard/repo"
)

// Service defines the guard service contract
type Service interface {
	domain.ServicePort
	domain.SweeperPort
}

// Config tunes the breaker window and the provenance lookups
type Config struct {
	Window         time.Duration
	Threshold      int
	InternalWindow time.Duration
	SweepEvery     time.Duration
}

// Defaults used when a Config field is zero
const (
	DefaultWindow     = 60 * time.Second
	DefaultThreshold  = 3
	DefaultSweepEvery = time.Minute
)

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	if c.InternalWindow <= 0 {
		c.InternalWindow = c.Window
	}
	if c.SweepEvery <= 0 {
		c.SweepEvery = DefaultSweepEvery
	}
	return c
}

// Svc implements the guard service
type Svc struct {
	cfg     Config
	counter domain.CounterStore

	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	sink   domain.TripSink

	log   logger.Logger
	now   func() time.Time
	newID func() uuid.UUID

	// serialises read-modify-write on the counter within this instance
	mu sync.Mutex
}

// Option configures optional collaborators
type Option func(*Svc)

// WithRepo enables provenance and trip logging in postgres
func WithRepo(db repokit.TxRunner, b repokit.Binder[repo.Repo]) Option {
	return func(s *Svc) {
		if db != nil && b != nil {
			s.db, s.binder = db, b
		}
	}
}

// WithSink sends trips to an analytics sink
func WithSink(sink domain.TripSink) Option {
	return func(s *Svc) { s.sink = sink }
}

// WithLogger sets the service logger
func WithLogger(l logger.Logger) Option {
	return func(s *Svc) { s.log = l }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Svc) { s.now = now }
}

// WithIDs overrides trip event id generation
func WithIDs(fn func() uuid.UUID) Option {
	return func(s *Svc) { s.newID = fn }
}

// New constructs a guard service around a counter store
func New(cfg Config, counter domain.CounterStore, opts ...Option) *Svc {
	if counter == nil {
		panic("guard.Service requires a non nil CounterStore")
	}
	s := &Svc{
		cfg:     cfg.withDefaults(),
		counter: counter,
		log:     *logger.Named("guard"),
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Config returns the effective configuration
func (s *Svc) Config() Config { return s.cfg }

func counterKey(entityID string) string { return "lead_" + entityID }

// Check records one sighting of entityID and decides whether to process it
// Counter store failures are logged and treated as a first sighting
func (s *Svc) Check(ctx context.Context, entityID string) domain.Check {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := counterKey(entityID)
	ttl := 2 * s.cfg.Window

	rec, ok, err := s.counter.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("entity_id", entityID).Msg("guard counter read failed")
		ok = false
	}

	if !ok || now.Sub(rec.WindowStart) > s.cfg.Window {
		s.store(ctx, key, domain.Record{Count: 1, WindowStart: now}, ttl)
		return domain.Check{ShouldProcess: true, Count: 1}
	}

	rec.Count++
	s.store(ctx, key, rec, ttl)

	if rec.Count > s.cfg.Threshold {
		secs := int(math.Round(now.Sub(rec.WindowStart).Seconds()))
		return domain.Check{
			ShouldProcess: false,
			Count:         rec.Count,
			Reason: fmt.Sprintf("Circuit breaker tripped: Lead %s processed %d times in %ds. Halting to prevent infinite loop.",
				entityID, rec.Count, secs),
		}
	}
	return domain.Check{ShouldProcess: true, Count: rec.Count}
}

func (s *Svc) store(ctx context.Context, key string, rec domain.Record, ttl time.Duration) {
	if err := s.counter.Set(ctx, key, rec, ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("guard counter write failed")
	}
}

// Reset forgets entityID
func (s *Svc) Reset(ctx context.Context, entityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.counter.Delete(ctx, counterKey(entityID)); err != nil {
		s.log.Warn().Err(err).Str("entity_id", entityID).Msg("guard reset failed")
	}
}

// ClearAll forgets every entity
func (s *Svc) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.counter.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("guard clear failed")
	}
}

// ShouldPropagate refuses to echo an update back to the system it came from
func (s *Svc) ShouldPropagate(source domain.UpdateSource, dir domain.Direction) bool {
	ok := ShouldPropagate(source, dir)
	if !ok {
		s.log.Info().Str("source", string(source)).Str("direction", string(dir)).Msg("guard blocked sync echo")
	}
	return ok
}

// ShouldPropagate is the pure provenance rule
func ShouldPropagate(source domain.UpdateSource, dir domain.Direction) bool {
	if dir != domain.ToHubSpot {
		return true
	}
	return source != domain.SourceHubSpotWebhook && source != domain.SourceSyncJob
}

// WasRecentlyUpdatedInternally looks for our own write to entityID within window
// A zero window uses the configured internal window. Lookup failures report false
func (s *Svc) WasRecentlyUpdatedInternally(ctx context.Context, entityID string, window time.Duration) domain.Internal {
	if s.db == nil {
		return domain.Internal{}
	}
	if window <= 0 {
		window = s.cfg.InternalWindow
	}
	p, ok, err := s.binder.Bind(s.db).LatestInternal(ctx, entityID, s.now().Add(-window), domain.InternalSources)
	if err != nil {
		s.log.Warn().Err(err).Str("entity_id", entityID).Msg("guard provenance lookup failed")
		return domain.Internal{}
	}
	if !ok {
		return domain.Internal{}
	}
	return domain.Internal{WasInternal: true, Source: p.Source}
}

// RecordSource logs where an update to entityID came from. Failures are logged only
func (s *Svc) RecordSource(ctx context.Context, entityID string, source domain.UpdateSource, details map[string]any) {
	if s.db == nil {
		return
	}
	now := s.now()
	err := s.binder.Bind(s.db).RecordSource(ctx, domain.Provenance{
		EntityID:   entityID,
		Source:     source,
		Details:    details,
		RecordedAt: now,
		ExpiresAt:  now.Add(2 * s.cfg.Window),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("entity_id", entityID).Str("source", string(source)).Msg("guard provenance write failed")
	}
}

// logTrip records a trip in postgres and the analytics sink, best effort
func (s *Svc) logTrip(ctx context.Context, entityID string, c domain.Check) {
	ev := domain.TripEvent{
		ID:       s.newID(),
		EntityID: entityID,
		Count:    c.Count,
		Reason:   c.Reason,
		At:       s.now(),
	}
	s.log.Warn().Str("entity_id", entityID).Int("count", c.Count).Str("event_id", ev.ID.String()).Msg(c.Reason)

	if s.db != nil {
		err := repokit.WithTxRetry(ctx, s.db, 2, func(q repokit.Queryer) error {
			return s.binder.Bind(q).LogTrip(ctx, ev)
		})
		if err != nil {
			s.log.Error().Err(err).Str("entity_id", entityID).Msg("guard trip log failed")
		}
	}
	if s.sink != nil {
		if err := s.sink.Trip(ctx, ev); err != nil {
			s.log.Error().Err(err).Str("entity_id", entityID).Msg("guard trip event failed")
		}
	}
}

// SafeProcess runs fn for entityID unless the breaker is tripped or the
// update is a webhook echo of our own recent write
func (s *Svc) SafeProcess(ctx context.Context, entityID string, source domain.UpdateSource, fn domain.ProcessFunc) domain.Outcome {
	c := s.Check(ctx, entityID)
	if !c.ShouldProcess {
		s.logTrip(ctx, entityID, c)
		return domain.Outcome{Blocked: c.Reason}
	}

	if source == domain.SourceHubSpotWebhook {
		if in := s.WasRecentlyUpdatedInternally(ctx, entityID, 0); in.WasInternal {
			s.log.Info().Str("entity_id", entityID).Str("source", string(in.Source)).Msg("guard ignoring webhook echo")
			return domain.Outcome{
				Blocked: fmt.Sprintf("Ignoring webhook - contact was recently updated internally (%s)", in.Source),
			}
		}
	}

	s.RecordSource(ctx, entityID, source, nil)

	res, err := invoke(ctx, fn)
	if err != nil {
		return domain.Outcome{Blocked: fmt.Sprintf("Processing error: %v", err)}
	}
	return domain.Outcome{Success: true, Result: res}
}

// invoke calls fn and turns a panic into an error
func invoke(ctx context.Context, fn domain.ProcessFunc) (res any, err error) {
	if fn == nil {
		return nil, nil
	}
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}
