package store

import (
	"context"
	"fmt"

	perr "chatguard/internal/platform/errors"
)

// Querier is the read side the sql and clickhouse seams share
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Many scans every row of the result
func Many[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// One expects exactly one row, perr.ErrNotFound when there is none
func One[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	items, err := Many(ctx, q, scan, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case len(items) == 0:
		return zero, perr.ErrNotFound
	case len(items) > 1:
		return zero, fmt.Errorf("store: expected one row, got %d", len(items))
	}
	return items[0], nil
}
