//go:build integration_redis
// +build integration_redis

package counter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"chatguard/internal/services/guard/domain"
)

func startRedis(t *testing.T) (redis.UniversalClient, func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)

	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start redis container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "6379/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	rc := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("ping redis: %v", err)
	}
	return rc, func() {
		_ = rc.Close()
		_ = c.Terminate(context.Background())
		cancel()
	}
}

func TestRedis_RoundTrip_Integration(t *testing.T) {
	rc, stop := startRedis(t)
	defer stop()

	ctx := context.Background()
	r := NewRedis(rc, "test:guard:")

	if _, ok, err := r.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing = %v %v", ok, err)
	}

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := r.Set(ctx, "lead_1", domain.Record{Count: 2, WindowStart: start}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	rec, ok, err := r.Get(ctx, "lead_1")
	if err != nil || !ok || rec.Count != 2 || !rec.WindowStart.Equal(start) {
		t.Fatalf("Get = %+v %v %v", rec, ok, err)
	}

	ttl, err := rc.TTL(ctx, "test:guard:lead_1").Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v err %v", ttl, err)
	}

	if err := r.Delete(ctx, "lead_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := r.Get(ctx, "lead_1"); ok {
		t.Fatalf("record survived Delete")
	}
}

func TestRedis_ClearOnlyOwnPrefix_Integration(t *testing.T) {
	rc, stop := startRedis(t)
	defer stop()

	ctx := context.Background()
	r := NewRedis(rc, "test:guard:")
	for i := 0; i < 450; i++ {
		if err := r.Set(ctx, fmt.Sprintf("lead_%d", i), domain.Record{Count: 1}, time.Minute); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if err := rc.Set(ctx, "other:key", "keep", 0).Err(); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	if err := r.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, err := rc.Exists(ctx, "test:guard:lead_0", "test:guard:lead_449").Result()
	if err != nil || n != 0 {
		t.Fatalf("guard keys remain: %d %v", n, err)
	}
	if v, _ := rc.Get(ctx, "other:key").Result(); v != "keep" {
		t.Fatalf("Clear removed a foreign key")
	}
}
