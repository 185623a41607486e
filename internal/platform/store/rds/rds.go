// Package rds provides a redis client over go-redis
package rds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr        string
	DB          int
	Password    string
	DialTimeout time.Duration
}

// newClient is a seam for tests
var newClient = func(o *redis.Options) redis.UniversalClient { return redis.NewClient(o) }

// Open dials redis and pings it once
func Open(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: empty addr")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	c := newClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
	})

	pctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := c.Ping(pctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("rds: ping %s: %w", cfg.Addr, err)
	}
	return c, nil
}

// Pinger adapts a client to the Ping(ctx) error shape used by readiness checks
type Pinger struct{ C redis.UniversalClient }

// Ping round trips PING
func (p Pinger) Ping(ctx context.Context) error { return p.C.Ping(ctx).Err() }
