// Package store opens the optional postgres, clickhouse and redis backends
// behind small seams so repositories never import a driver
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"chatguard/internal/platform/logger"
	"chatguard/internal/platform/store/ch"
	"chatguard/internal/platform/store/pg"
	"chatguard/internal/platform/store/rds"
)

// Store holds whichever backends were enabled, the rest stay nil
type Store struct {
	Log logger.Logger

	PG  TxRunner
	CH  Clickhouse
	RDS redis.UniversalClient
}

// Row is a single scannable row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a forward only result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repositories use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside one transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar event sink
// each insert row lists values in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates the Store before any backend opens
type Option func(*Store)

// WithLogger sets the logger backends log through
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.Log = l }
}

var (
	openPG = func(ctx context.Context, c pg.Config) (pgxPool, error) {
		p, err := pg.Open(ctx, c)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	openCH = func(ctx context.Context, c ch.Config) (chClient, error) {
		cl, err := ch.Open(ctx, c)
		if err != nil {
			return nil, err
		}
		return cl, nil
	}
	openRDS = rds.Open
)

// Open connects every enabled backend
// a failure closes the ones already open
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Get()}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		retries := cfg.PG.ConnectRetries
		if retries <= 0 {
			retries = 6
		}
		pool, err := openPG(ctx, pg.Config{
			URL:         cfg.PG.URL,
			MaxConns:    cfg.PG.MaxConns,
			Retries:     retries,
			PingTimeout: cfg.PG.PingTimeout,
			Tracer:      pg.NewTracer(s.Log, cfg.PG.SlowQuery, cfg.PG.LogSQL),
		})
		if err != nil {
			return nil, s.abort(fmt.Errorf("store: postgres: %w", err))
		}
		s.PG = newSQLDB(pool)
		s.Log.Debug().Int32("max_conns", cfg.PG.MaxConns).Msg("postgres connected")
	}

	if cfg.CH.Enabled {
		tag := cfg.CH.ClientTag
		if tag == "" {
			tag = cfg.AppName
		}
		c, err := openCH(ctx, ch.Config{URL: cfg.CH.URL, Role: cfg.CH.ClientName, Tag: tag})
		if err != nil {
			return nil, s.abort(fmt.Errorf("store: clickhouse: %w", err))
		}
		s.CH = chDB{c: c}
		s.Log.Debug().Msg("clickhouse connected")
	}

	if cfg.RDS.Enabled {
		c, err := openRDS(ctx, rds.Config{
			Addr:        cfg.RDS.Addr,
			DB:          cfg.RDS.DB,
			Password:    cfg.RDS.Password,
			DialTimeout: cfg.RDS.DialTimeout,
		})
		if err != nil {
			return nil, s.abort(fmt.Errorf("store: redis: %w", err))
		}
		s.RDS = c
		s.Log.Debug().Str("addr", cfg.RDS.Addr).Int("db", cfg.RDS.DB).Msg("redis connected")
	}

	return s, nil
}

func (s *Store) abort(err error) error {
	if cerr := s.Close(context.Background()); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil store")
	}
	var errs []error
	check := func(name string, v any) {
		if p, ok := v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	if s.PG != nil {
		check("pg", s.PG)
	}
	if s.CH != nil {
		check("ch", s.CH)
	}
	if s.RDS != nil {
		check("redis", rds.Pinger{C: s.RDS})
	}
	return errors.Join(errs...)
}

// Close shuts every open backend down and joins the failures
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
