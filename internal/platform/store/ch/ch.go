// Package ch provides a clickhouse client over clickhouse-go/v2
package ch

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"chatguard/internal/core/version"
)

// Config configures clickhouse client
type Config struct {
	URL string
	// Role and Tag are reported to the server as client info
	Role string
	Tag  string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// batch is the slice of driver.Batch used for inserts
type batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// session is the slice of driver.Conn the client needs
type session interface {
	prepare(ctx context.Context, query string) (batch, error)
	query(ctx context.Context, query string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// CH is a clickhouse client
type CH struct {
	s session
}

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Open parses the DSN, dials and pings clickhouse
func Open(ctx context.Context, cfg Config) (*CH, error) {
	if cfg.URL == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg.Role, cfg.Tag)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return &CH{s: driverSession{conn}}, nil
}

// Insert appends rows to table in one batch, each row in column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if !tableRe.MatchString(table) {
		return fmt.Errorf("ch: invalid table name %q", table)
	}
	if len(rows) == 0 {
		return nil
	}
	b, err := c.s.prepare(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for _, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("ch: append %s: %w", table, err)
		}
	}
	if err := b.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return c.s.query(ctx, sql, args...)
}

// Ping checks the connection
func (c *CH) Ping(ctx context.Context) error { return c.s.Ping(ctx) }

// Close closes resources
func (c *CH) Close() error { return c.s.Close() }

// clientInfo shows up in system.query_log so inserts can be traced to a build
func clientInfo(role, tag string) clickhouse.ClientInfo {
	bi := version.Info()
	product := func(name, v string) struct{ Name, Version string } {
		return struct{ Name, Version string }{Name: name, Version: strings.TrimSpace(v)}
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		product(bi.Service, bi.Version),
		product("role", role),
		product("tag", tag),
		product("commit", bi.Commit),
		product("go", runtime.Version()),
	}}
}

type driverSession struct{ conn driver.Conn }

func (d driverSession) prepare(ctx context.Context, q string) (batch, error) {
	return d.conn.PrepareBatch(ctx, q)
}

func (d driverSession) query(ctx context.Context, q string, args ...any) (Rows, error) {
	return d.conn.Query(ctx, q, args...)
}

func (d driverSession) Ping(ctx context.Context) error { return d.conn.Ping(ctx) }
func (d driverSession) Close() error                   { return d.conn.Close() }
