package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"chatguard/internal/platform/testkit"

	"github.com/rs/zerolog"
)

// capture points the root logger at a buffer for the test
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Set(zerolog.New(&buf))
	t.Cleanup(func() {
		if prev != nil {
			Set(*prev)
		}
	})
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ln := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if ln == "" {
			continue
		}
		m := map[string]any{}
		if err := json.Unmarshal([]byte(ln), &m); err != nil {
			t.Fatalf("bad log line %q: %v", ln, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"INFO":      zerolog.InfoLevel,
		" warning ": zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"":          zerolog.DebugLevel,
		"loud":      zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Fatalf("level(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuild_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{
		Level:        "info",
		Format:       "json",
		Service:      "chatguard-api",
		Component:    "root",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})
	l.Debug().Msg("dropped")
	l.Info().Msg("kept")

	got := lines(t, &buf)
	if len(got) != 1 {
		t.Fatalf("lines = %d, want 1", len(got))
	}
	m := got[0]
	if m["message"] != "kept" || m["service"] != "chatguard-api" || m["component"] != "root" || m["build"] != "test" {
		t.Fatalf("line = %v", m)
	}
}

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Format: "console", Writer: &buf, Service: "svc-a"})
	l.Info().Msg("hello")
	testkit.MustContain(t, buf.String(), "hello")
	testkit.MustContain(t, buf.String(), "svc-a")
}

func TestC_AddsContextIDs(t *testing.T) {
	buf := capture(t)

	ctx := WithRequest(context.Background(), "req-1", "lead-42")
	ctx = WithRequest(ctx, "", "")
	C(ctx).Info().Msg("scoped")
	C(context.Background()).Info().Msg("bare")
	Named("guard").Info().Msg("named")

	got := lines(t, buf)
	if len(got) != 3 {
		t.Fatalf("lines = %d", len(got))
	}
	if got[0]["request_id"] != "req-1" || got[0]["entity_id"] != "lead-42" {
		t.Fatalf("scoped = %v", got[0])
	}
	if _, ok := got[1]["request_id"]; ok {
		t.Fatalf("bare carried a request id: %v", got[1])
	}
	if got[2]["component"] != "guard" {
		t.Fatalf("named = %v", got[2])
	}
}

func TestSet_ReturnsPrevious(t *testing.T) {
	capture(t)
	var buf bytes.Buffer
	prev := Set(zerolog.New(&buf))
	if prev == nil {
		t.Fatal("prev = nil")
	}
	Init(Options{Writer: &bytes.Buffer{}})
	Get().Info().Msg("after init")
	if !strings.Contains(buf.String(), "after init") {
		t.Fatalf("Init replaced a Set logger: %q", buf.String())
	}
	if Named("") != Get() {
		t.Fatal("Named(\"\") should return the root")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}
