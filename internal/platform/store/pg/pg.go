// Package pg opens pgx pools and waits for the server to answer
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool and the readiness wait
type Config struct {
	URL      string
	MaxConns int32

	// Retries is the number of pings before Open gives up, at least one
	Retries int
	// PingTimeout bounds each ping, 5s when zero
	PingTimeout time.Duration

	// Tracer is installed on every connection, nil disables tracing
	Tracer pgx.QueryTracer
}

var (
	newPool = pgxpool.NewWithConfig
	ping    = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }

	backoffStart = 150 * time.Millisecond
	backoffMax   = 2 * time.Second
)

// Open builds the pool and pings it with exponential backoff
// the pool is closed again when the server never answers
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.Tracer != nil {
		pcfg.ConnConfig.Tracer = cfg.Tracer
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	if err := waitReady(ctx, pool, cfg); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func waitReady(ctx context.Context, pool *pgxpool.Pool, cfg Config) error {
	attempts := max(cfg.Retries, 1)
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	backoff := backoffStart
	var last error
	for i := range attempts {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx, pool)
		cancel()
		if last == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		backoff = min(backoff*2, backoffMax)
	}
	return fmt.Errorf("pg: ping failed after %d attempts: %w", attempts, last)
}
