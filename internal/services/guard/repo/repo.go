// Package repo provides postgres access for the loop guard
package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"chatguard/internal/modkit/repokit"
	perr "chatguard/internal/platform/errors"
	"chatguard/internal/services/guard/domain"
)

// Schema creates the guard tables when missing
//
//go:embed schema.sql
var Schema string

// Trip alert constants written alongside every breaker trip
const (
	TripPlatform    = "hubspot"
	TripErrorType   = "circuit_breaker_trip"
	TripAlertLevel  = "critical"
	TripInsightType = "system_alert"
	TripTitle       = "Circuit Breaker Tripped - Infinite Loop Detected"
	TripAgent       = "circuit-breaker"
	TripAction      = "Review the CRM workflow feeding this contact for an update loop"
)

// Repo is the persistence surface for provenance and trip logging
type Repo interface {
	EnsureSchema(ctx context.Context) error
	RecordSource(ctx context.Context, p domain.Provenance) error
	LatestInternal(ctx context.Context, entityID string, since time.Time, sources []domain.UpdateSource) (domain.Provenance, bool, error)
	LogTrip(ctx context.Context, ev domain.TripEvent) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) EnsureSchema(ctx context.Context) error {
	_, err := r.q.Exec(ctx, Schema)
	return perr.FromPostgres(err, "ensure guard schema")
}

func (r *queries) RecordSource(ctx context.Context, p domain.Provenance) error {
	const sql = `
insert into update_source_log (entity_id, source, details, created_at, expires_at)
values ($1, $2, nullif($3, '')::jsonb, $4, $5)
`
	details, err := jsonText(p.Details)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, sql, p.EntityID, string(p.Source), details, p.RecordedAt, p.ExpiresAt)
	return perr.FromPostgres(err, "record update source")
}

func (r *queries) LatestInternal(ctx context.Context, entityID string, since time.Time, sources []domain.UpdateSource) (domain.Provenance, bool, error) {
	const sql = `
select source, created_at, expires_at
from update_source_log
where entity_id = $1
and created_at >= $2
and source = any($3)
order by created_at desc
limit 1
`
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = string(s)
	}

	var (
		src string
		p   = domain.Provenance{EntityID: entityID}
	)
	err := r.q.QueryRow(ctx, sql, entityID, since, names).Scan(&src, &p.RecordedAt, &p.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Provenance{}, false, nil
	}
	if err != nil {
		return domain.Provenance{}, false, perr.FromPostgres(err, "latest internal source")
	}
	p.Source = domain.UpdateSource(src)
	return p, true, nil
}

// LogTrip writes the sync error and the insight; run it inside a tx to keep both or neither
func (r *queries) LogTrip(ctx context.Context, ev domain.TripEvent) error {
	const errSQL = `
insert into sync_errors (platform, error_type, error_message, context, occurred_at)
values ($1, $2, $3, $4::jsonb, $5)
`
	const insightSQL = `
insert into proactive_insights (insight_type, title, description, priority, source_agent, is_actionable, data, created_at)
values ($1, $2, $3, $4, $5, true, $6::jsonb, $7)
`
	errCtx, err := jsonText(map[string]any{
		"contact_id":       ev.EntityID,
		"processing_count": ev.Count,
		"event_id":         ev.ID.String(),
		"alert_level":      TripAlertLevel,
	})
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, errSQL, TripPlatform, TripErrorType, ev.Reason, errCtx, ev.At); err != nil {
		return perr.FromPostgres(err, "log sync error")
	}

	data, err := jsonText(map[string]any{
		"contact_id":         ev.EntityID,
		"processing_count":   ev.Count,
		"recommended_action": TripAction,
	})
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, insightSQL, TripInsightType, TripTitle, ev.Reason, TripAlertLevel, TripAgent, data, ev.At)
	return perr.FromPostgres(err, "log trip insight")
}

func (r *queries) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const sql = `delete from update_source_log where expires_at < $1`
	tag, err := r.q.Exec(ctx, sql, now)
	if err != nil {
		return 0, perr.FromPostgres(err, "purge expired sources")
	}
	return tag.RowsAffected(), nil
}

// jsonText encodes v for a jsonb parameter, empty for a nil map
func jsonText(v map[string]any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
