package module

import (
	"time"

	"chatguard/internal/platform/config"
	"chatguard/internal/services/guard/counter"
	"chatguard/internal/services/guard/events"
)

// Options controls the guard. Values are read from env
type Options struct {
	Window         time.Duration
	Threshold      int
	InternalWindow time.Duration
	SweepEvery     time.Duration

	// Counter picks the counter store: memory or redis
	Counter     string
	RedisPrefix string
	EvictEvery  time.Duration

	// StatementTimeout and LockTimeout cap each guard statement inside a tx
	StatementTimeout time.Duration
	LockTimeout      time.Duration

	// TripsTable is the clickhouse table for trip events
	TripsTable string

	// AdminToken guards reset, clear and record when set
	AdminToken string
}

// FromConfig reads options using the CORE_GUARD_ prefix
func FromConfig(cfg config.Conf) Options {
	g := cfg.Prefix("CORE_GUARD_")
	window := g.MayDuration("WINDOW", 60*time.Second)
	return Options{
		Window:           window,
		Threshold:        g.MayInt("THRESHOLD", 3),
		InternalWindow:   g.MayDuration("INTERNAL_WINDOW", window),
		SweepEvery:       g.MayDuration("SWEEP_EVERY", time.Minute),
		Counter:          g.MayEnum("COUNTER", "redis", "redis", "memory"),
		RedisPrefix:      g.MayString("REDIS_PREFIX", counter.DefaultPrefix),
		EvictEvery:       g.MayDuration("EVICT_EVERY", time.Minute),
		TripsTable:       g.MayString("TRIPS_TABLE", events.Table),
		StatementTimeout: g.MayDuration("STATEMENT_TIMEOUT", 2*time.Second),
		LockTimeout:      g.MayDuration("LOCK_TIMEOUT", time.Second),
		AdminToken:       g.MayString("ADMIN_TOKEN", ""),
	}
}
