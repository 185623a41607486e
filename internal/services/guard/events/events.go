// Package events writes breaker trips to clickhouse for analytics
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chatguard/internal/platform/store"
	"chatguard/internal/services/guard/domain"
)

// Table is the default trip events table
const Table = "guard_trip_events"

// DDL creates the trip events table
const DDL = `
create table if not exists guard_trip_events (
  id         UUID,
  entity_id  String,
  count      UInt32,
  reason     String,
  at         DateTime64(3, 'UTC')
) engine = MergeTree
order by (at, entity_id)
ttl toDateTime(at) + interval 90 day
`

// CH is a TripSink backed by the clickhouse seam
type CH struct {
	ch    store.Clickhouse
	table string
}

// NewCH binds the sink to a clickhouse seam. An empty table uses Table
func NewCH(c store.Clickhouse, table string) *CH {
	if c == nil {
		panic("events.CH requires a non nil Clickhouse")
	}
	if table == "" {
		table = Table
	}
	return &CH{ch: c, table: table}
}

// Trip appends one row, assigning an id when the event has none
func (s *CH) Trip(ctx context.Context, ev domain.TripEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.Count < 0 {
		ev.Count = 0
	}
	row := []any{ev.ID, ev.EntityID, uint32(ev.Count), ev.Reason, ev.At.UTC()}
	if err := s.ch.Insert(ctx, s.table, [][]any{row}); err != nil {
		return fmt.Errorf("insert %s: %w", s.table, err)
	}
	return nil
}

// Recent returns the latest trips, newest first
func (s *CH) Recent(ctx context.Context, limit int) ([]domain.TripEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	sql := fmt.Sprintf(`select id, entity_id, count, reason, at from %s order by at desc limit %d`, s.table, limit)
	return store.Many(ctx, s.ch, scanTrip, sql)
}

func scanTrip(r store.Row) (domain.TripEvent, error) {
	var (
		ev    domain.TripEvent
		count uint32
		at    time.Time
	)
	if err := r.Scan(&ev.ID, &ev.EntityID, &count, &ev.Reason, &at); err != nil {
		return domain.TripEvent{}, err
	}
	ev.Count = int(count)
	ev.At = at
	return ev, nil
}

// Nop discards trips
type Nop struct{}

// Trip does nothing
func (Nop) Trip(context.Context, domain.TripEvent) error { return nil }
