package http_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"chatguard/internal/platform/config"
	phttp "chatguard/internal/platform/net/http"
)

func TestNewServer_Addr(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"default", nil, ":4000"},
		{"port", map[string]string{"T_PORT": "8081"}, ":8081"},
		{"addr_wins", map[string]string{"T_PORT": "8081", "T_ADDR": "127.0.0.1:9000"}, "127.0.0.1:9000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if got := phttp.NewServer(config.New().Prefix("T_")).Addr(); got != tc.want {
				t.Fatalf("Addr = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestServer_RunAndShutdown(t *testing.T) {
	t.Setenv("T_ADDR", "127.0.0.1:0")
	hooked := false
	srv := phttp.NewServer(config.New().Prefix("T_"), func(*chi.Mux) { hooked = true })
	if !hooked {
		t.Fatal("option not applied")
	}
	srv.Router().Get("/ping", write("pong"))

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for strings.HasSuffix(srv.Addr(), ":0") {
		if time.Now().After(deadline) {
			t.Fatal("server never listened")
		}
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body = %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestServer_RunBadAddr(t *testing.T) {
	t.Setenv("T_ADDR", "256.0.0.1:bad")
	if err := phttp.NewServer(config.New().Prefix("T_")).Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
