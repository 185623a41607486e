package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is what pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxPool is the slice of *pgxpool.Pool the sql seam drives
type pgxPool interface {
	pgxQuerier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// sqlQuerier narrows pgx results to the store interfaces
type sqlQuerier struct{ q pgxQuerier }

func (s sqlQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := s.q.Exec(ctx, sql, args...)
	return ct, err
}

func (s sqlQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (s sqlQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return s.q.QueryRow(ctx, sql, args...)
}

// sqlDB is the TxRunner over a pool
type sqlDB struct {
	sqlQuerier
	pool pgxPool
}

var _ TxRunner = (*sqlDB)(nil)

func newSQLDB(p pgxPool) *sqlDB { return &sqlDB{sqlQuerier: sqlQuerier{q: p}, pool: p} }

// Tx commits when fn returns nil and rolls back otherwise
func (d *sqlDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		return fn(sqlQuerier{q: tx})
	})
}

func (d *sqlDB) Ping(ctx context.Context) error { return d.pool.Ping(ctx) }

func (d *sqlDB) Close() error {
	d.pool.Close()
	return nil
}
