package net_test

import (
	"context"
	"testing"

	pnet "chatguard/internal/platform/net"
)

func TestContextIDs(t *testing.T) {
	base := context.Background()

	ctx := pnet.WithUser(pnet.WithRequestID(base, "req-123"), "admin")
	if got := pnet.RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := pnet.UserID(ctx); got != "admin" {
		t.Fatalf("UserID = %q", got)
	}

	if pnet.WithRequestID(base, "") != base || pnet.WithUser(base, "") != base {
		t.Fatal("empty ids should leave ctx unchanged")
	}
	if pnet.RequestID(base) != "" || pnet.UserID(base) != "" {
		t.Fatal("background ctx should carry no ids")
	}
}
