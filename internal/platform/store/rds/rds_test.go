package rds

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	kit "chatguard/internal/platform/testkit"
)

func TestOpen_EmptyAddr(t *testing.T) {
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpen_PingFailureClosesClient(t *testing.T) {
	kit.Serial(t)
	var got *redis.Options
	kit.Swap(t, &newClient, func(o *redis.Options) redis.UniversalClient {
		got = o
		return redis.NewClient(o)
	})

	// nothing listens on port 1
	_, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", DB: 2, DialTimeout: 200 * time.Millisecond})
	if err == nil || !strings.Contains(err.Error(), "rds: ping 127.0.0.1:1") {
		t.Fatalf("want ping error, got %v", err)
	}
	if got == nil || got.DB != 2 || got.DialTimeout != 200*time.Millisecond {
		t.Fatalf("options not passed through: %+v", got)
	}
}

func TestPinger_Unreachable(t *testing.T) {
	c := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer func() { _ = c.Close() }()
	if err := (Pinger{C: c}).Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
}
