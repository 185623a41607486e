package net_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	perr "chatguard/internal/platform/errors"
	pnet "chatguard/internal/platform/net"
)

func TestReply(t *testing.T) {
	got := pnet.Reply(http.StatusCreated, map[string]int{"n": 1}, "req-1")
	want := pnet.Wire{
		StatusCode: 201,
		Status:     "Created",
		RequestID:  "req-1",
		Data:       map[string]int{"n": 1},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("Reply (-want +got):\n%s", d)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
		msg    string
	}{
		{"nil", nil, http.StatusOK, 0, ""},
		{"coded", perr.Unauthorizedf("missing bearer token"), http.StatusUnauthorized, perr.ErrorCodeUnauthorized, "missing bearer token"},
		{"unavailable", perr.Unavailablef("model down"), http.StatusServiceUnavailable, perr.ErrorCodeUnavailable, "model down"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, w := pnet.Error(tc.err, "req-9")
			if status != tc.status || w.StatusCode != tc.status || w.RequestID != "req-9" {
				t.Fatalf("status = %d wire = %+v", status, w)
			}
			if w.Code != tc.code {
				t.Fatalf("code = %d, want %d", w.Code, tc.code)
			}
			if tc.msg != "" && w.Error != tc.msg {
				t.Fatalf("error = %q, want %q", w.Error, tc.msg)
			}
		})
	}
}
