package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "chatguard/internal/platform/errors"
	pnet "chatguard/internal/platform/net"
	phttp "chatguard/internal/platform/net/http"
)

type note struct {
	Text string `json:"text" validate:"required,max=10"`
}

func serve(t *testing.T, h phttp.Handler, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(pnet.WithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()
	h(rec, req)

	var env phttp.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestHandle_Responses(t *testing.T) {
	tests := []struct {
		name   string
		resp   phttp.Response
		status int
		code   perr.ErrorCode
		page   bool
	}{
		{"ok", phttp.OK("x"), http.StatusOK, 0, false},
		{"zero_status", phttp.Response{Body: "x"}, http.StatusOK, 0, false},
		{"created", phttp.Created("x"), http.StatusCreated, 0, false},
		{"no_content", phttp.NoContent(), http.StatusNoContent, 0, false},
		{"error", phttp.Error(perr.ErrNotFound), http.StatusNotFound, perr.ErrorCodeNotFound, false},
		{"list", phttp.List([]int{1, 2}, 2, 1, 50, "c"), http.StatusOK, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := serve(t, phttp.Handle(func(*http.Request) phttp.Response { return tc.resp }), "")
			if rec.Code != tc.status {
				t.Fatalf("code = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusNoContent {
				if rec.Body.Len() != 0 {
					t.Fatalf("204 with body %q", rec.Body.String())
				}
				return
			}
			if env.StatusCode != tc.status || env.RequestID != "req-1" || env.Code != tc.code {
				t.Fatalf("env = %+v", env)
			}
			if (env.Page != nil) != tc.page {
				t.Fatalf("page = %+v", env.Page)
			}
		})
	}
}

func TestHandle_Header(t *testing.T) {
	resp := phttp.OK(nil)
	resp.Header = http.Header{"Retry-After": {"3"}}
	rec, _ := serve(t, phttp.Handle(func(*http.Request) phttp.Response { return resp }), "")
	if rec.Header().Get("Retry-After") != "3" {
		t.Fatalf("headers = %v", rec.Header())
	}
}

func TestJSONHandler(t *testing.T) {
	echo := phttp.JSONHandler(func(_ *http.Request, in note) (any, error) {
		if in.Text == "boom" {
			return nil, perr.Unavailablef("model down")
		}
		if in.Text == "new" {
			return phttp.Created(in), nil
		}
		return in, nil
	})

	tests := []struct {
		name   string
		body   string
		status int
		code   perr.ErrorCode
	}{
		{"ok", `{"text":"hi"}`, http.StatusOK, 0},
		{"passthrough", `{"text":"new"}`, http.StatusCreated, 0},
		{"handler_error", `{"text":"boom"}`, http.StatusServiceUnavailable, perr.ErrorCodeUnavailable},
		{"invalid", `{"text":""}`, http.StatusBadRequest, perr.ErrorCodeValidation},
		{"malformed", `{"text":`, http.StatusBadRequest, perr.ErrorCodeJSON},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := serve(t, echo, tc.body)
			if rec.Code != tc.status || env.Code != tc.code {
				t.Fatalf("got %d %+v", rec.Code, env)
			}
		})
	}
}

func TestCall(t *testing.T) {
	h := phttp.Call(func(r *http.Request) (any, error) {
		return map[string]string{"id": pnet.RequestID(r.Context())}, nil
	})
	rec, env := serve(t, h, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if m, _ := env.Data.(map[string]any); m["id"] != "req-1" {
		t.Fatalf("data = %#v", env.Data)
	}
}
