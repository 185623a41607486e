package store

import (
	"context"

	"chatguard/internal/platform/store/ch"
)

// chClient is the slice of *ch.CH the clickhouse seam drives
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

type chDB struct{ c chClient }

var _ Clickhouse = chDB{}

func (d chDB) Insert(ctx context.Context, table string, rows [][]any) error {
	return d.c.Insert(ctx, table, rows)
}

func (d chDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := d.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (d chDB) Ping(ctx context.Context) error { return d.c.Ping(ctx) }
func (d chDB) Close() error                   { return d.c.Close() }

// chRows drops the close error, readers only see Err
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
