package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"chatguard/internal/platform/testkit"
	"chatguard/internal/services/reply/domain"
)

type cannedLLM struct{ reply string }

func (c cannedLLM) Chat(context.Context, []domain.Message, float64) (string, error) {
	return c.reply, nil
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out)
	a.model = cannedLLM{reply: "Happy to help, what is your main goal?"}
	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSanitizeAndSentiment(t *testing.T) {
	out, err := run(t, "", "sanitize", "call", "me", "at", "+1 555 123 4567")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	testkit.MustContain(t, out, "[PHONE_REDACTED]")

	out, err = run(t, "please unsubscribe me\n", "sentiment")
	if err != nil {
		t.Fatalf("sentiment: %v", err)
	}
	testkit.MustContain(t, out, "RISK")
}

func TestLoop_JSON(t *testing.T) {
	out, err := run(t, "", "--json", "loop", "--previous", "same words here", "--candidate", "same words here", "hm")
	if err != nil {
		t.Fatalf("loop: %v", err)
	}
	var got domain.LoopOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !got.Looping() || got.Repair == "" || got.Similarity != 100 {
		t.Fatalf("loop = %+v", got)
	}
}

func TestSegmentAndPause(t *testing.T) {
	out, err := run(t, "", "--json", "segment", "just a short one")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	testkit.MustContain(t, out, `"delay_ms": 0`)

	if _, err := run(t, "", "segment", "--max-bubbles", "11", "x"); err == nil {
		t.Fatal("max bubbles over 10 accepted")
	}

	out, err = run(t, "", "--seed", "7", "pause", "what time works?")
	if err != nil || !strings.HasSuffix(strings.TrimSpace(out), "ms") {
		t.Fatalf("pause = %q %v", out, err)
	}
}

func TestHumanize_SeedIsStable(t *testing.T) {
	a, err := run(t, "", "--seed", "3", "humanize", "I would be happy to help you.")
	if err != nil {
		t.Fatalf("humanize: %v", err)
	}
	b, _ := run(t, "", "--seed", "3", "humanize", "I would be happy to help you.")
	if a != b {
		t.Fatalf("seeded humanize differs: %q vs %q", a, b)
	}
}

func TestCompose_JSON(t *testing.T) {
	out, err := run(t, "", "--json", "--seed", "42", "compose", "--mood", "CASUAL", "can you help me lose weight?")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	var got domain.Composed
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Reply == "" || len(got.Schedule) == 0 || got.Fallback {
		t.Fatalf("composed = %+v", got)
	}
}

func TestPropagate(t *testing.T) {
	tests := []struct {
		source, dir string
		want        string
		wantErr     bool
	}{
		{"hubspot_webhook", "to_hubspot", "skip", false},
		{"sync_job", "to_hubspot", "skip", false},
		{"internal_api", "to_hubspot", "propagate", false},
		{"hubspot_webhook", "to_supabase", "propagate", false},
		{"internal_api", "sideways", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.source+"_"+tc.dir, func(t *testing.T) {
			out, err := run(t, "", "propagate", "--source", tc.source, "--direction", tc.dir)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !tc.wantErr && strings.TrimSpace(out) != tc.want {
				t.Fatalf("out = %q, want %q", out, tc.want)
			}
		})
	}
}

func TestMissingText(t *testing.T) {
	if _, err := run(t, "   \n", "sentiment"); err == nil {
		t.Fatal("empty stdin accepted")
	}
}
