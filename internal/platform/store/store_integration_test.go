//go:build integration_pg

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func postgresDSN(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env:          map[string]string{"POSTGRES_PASSWORD": "postgres"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
}

func TestPostgres_Integration(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: postgresDSN(t), SlowQuery: time.Second}}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if _, err := s.PG.Exec(ctx, `CREATE TABLE trips (entity_id text PRIMARY KEY, n int NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO trips VALUES ($1, 1)`, "c1")
		return err
	})
	if err != nil {
		t.Fatalf("commit tx: %v", err)
	}

	rollback := errors.New("rollback")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `UPDATE trips SET n = n + 1 WHERE entity_id = $1`, "c1"); err != nil {
			return err
		}
		return rollback
	})
	if !errors.Is(err, rollback) {
		t.Fatalf("rollback tx: %v", err)
	}

	var n int
	if err := s.PG.QueryRow(ctx, `SELECT n FROM trips WHERE entity_id = $1`, "c1").Scan(&n); err != nil || n != 1 {
		t.Fatalf("n = %d err = %v", n, err)
	}

	type trip struct {
		ID string
		N  int
	}
	got, err := Many(ctx, s.PG, func(r Row) (trip, error) {
		var tr trip
		err := r.Scan(&tr.ID, &tr.N)
		return tr, err
	}, `SELECT entity_id, n FROM trips`)
	if err != nil || len(got) != 1 || got[0] != (trip{"c1", 1}) {
		t.Fatalf("Many = %v %v", got, err)
	}
}
