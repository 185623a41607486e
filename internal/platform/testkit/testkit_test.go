package testkit

import (
	"strings"
	"testing"
)

var knob = 10

type recTB struct {
	testing.TB
	failed bool
}

func (r *recTB) Helper()               {}
func (r *recTB) Fatalf(string, ...any) { r.failed = true }

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		Swap(t, &knob, 42)
		if knob != 42 {
			t.Fatalf("knob = %d", knob)
		}
	})
	if knob != 10 {
		t.Fatalf("knob not restored: %d", knob)
	}
}

func TestPanicAssertions(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})

	r := &recTB{TB: t}
	MustPanic(r, func() {})
	if !r.failed {
		t.Fatal("MustPanic accepted a clean return")
	}
	r = &recTB{TB: t}
	MustNotPanic(r, func() { panic("boom") })
	if !r.failed {
		t.Fatal("MustNotPanic accepted a panic")
	}
}

func TestMustContain(t *testing.T) {
	MustContain(t, "alpha beta", "beta")

	r := &recTB{TB: t}
	MustContain(r, "alpha", "gamma")
	if !r.failed {
		t.Fatal("MustContain accepted a miss")
	}
}

func TestClip(t *testing.T) {
	if got := clip("abc", 10); got != "abc" {
		t.Fatalf("clip = %q", got)
	}
	got := clip(strings.Repeat("x", 20), 5)
	if !strings.HasPrefix(got, "xxxxx...") || !strings.Contains(got, "15 more") {
		t.Fatalf("clip = %q", got)
	}
}
