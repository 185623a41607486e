// Package testkit holds the assertions and seam helpers shared by tests
package testkit

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

var serial sync.Mutex

// Swap points target at v until the test ends
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	old := *target
	*target = v
	t.Cleanup(func() { *target = old })
}

// Serial holds a process wide lock until the test ends
// Use it in parallel tests that touch package globals
func Serial(t testing.TB) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// recovered runs fn and reports what it panicked with
func recovered(fn func()) (v any, panicked bool) {
	defer func() {
		if v = recover(); v != nil {
			panicked = true
		}
	}()
	fn()
	return nil, false
}

// MustPanic fails the test when fn returns normally
func MustPanic(t testing.TB, fn func()) {
	t.Helper()
	if _, ok := recovered(fn); !ok {
		t.Fatalf("expected a panic")
	}
}

// MustNotPanic fails the test when fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	if v, ok := recovered(fn); ok {
		t.Fatalf("unexpected panic: %v", v)
	}
}

// MustContain fails the test when s lacks sub
func MustContain(t testing.TB, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("missing %q in:\n%s", sub, clip(s, 2048))
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + fmt.Sprintf("... (%d more bytes)", len(s)-n)
}
