package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "chatguard/internal/platform/errors"
	phttp "chatguard/internal/platform/net/http"
)

type ping struct {
	Msg string `json:"msg" validate:"required"`
}

func newMux() (*chi.Mux, Router) {
	m := chi.NewRouter()
	return m, phttp.AdaptChi(m)
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

func TestSugar(t *testing.T) {
	mux, r := newMux()
	Get(r, "/ok", func(*http.Request) (any, error) { return "ok", nil })
	Post(r, "/fail", func(*http.Request) (any, error) { return nil, perr.ErrNotFound })
	PostJSON(r, "/echo", func(_ *http.Request, in ping) (any, error) { return in.Msg, nil })

	tests := []struct {
		method, path, body string
		want               int
		data               any
	}{
		{http.MethodGet, "/ok", "", http.StatusOK, "ok"},
		{http.MethodPost, "/fail", "", http.StatusNotFound, nil},
		{http.MethodPost, "/echo", `{"msg":"hi"}`, http.StatusOK, "hi"},
		{http.MethodPost, "/echo", `{}`, http.StatusBadRequest, nil},
	}
	for _, tc := range tests {
		t.Run(tc.method+tc.path, func(t *testing.T) {
			code, env := do(t, mux, tc.method, tc.path, tc.body)
			if code != tc.want || env.Data != tc.data {
				t.Fatalf("got %d %+v", code, env)
			}
		})
	}
}

func TestMountAPI(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mux, r := newMux()
	MountAPIV1(r, []func(http.Handler) http.Handler{mark("api")}, func(api Router) {
		MountUnder(api, "/guard", []func(http.Handler) http.Handler{mark("guard")}, func(g Router) {
			Get(g, "/trips", func(*http.Request) (any, error) { return nil, nil })
		})
		MountUnder(api, "/meta", nil, func(m Router) {
			Get(m, "/health", func(*http.Request) (any, error) { return nil, nil })
		})
	})
	MountAPI(r, "/v2", nil, func(api Router) {
		Get(api, "/x", func(*http.Request) (any, error) { return nil, nil })
	})

	if code, _ := do(t, mux, http.MethodGet, "/api/v1/guard/trips", ""); code != http.StatusOK {
		t.Fatalf("trips = %d", code)
	}
	if strings.Join(order, ",") != "api,guard" {
		t.Fatalf("order = %v", order)
	}
	order = nil
	do(t, mux, http.MethodGet, "/api/v1/meta/health", "")
	if strings.Join(order, ",") != "api" {
		t.Fatalf("meta order = %v", order)
	}
	if code, _ := do(t, mux, http.MethodGet, "/api/v2/x", ""); code != http.StatusOK {
		t.Fatalf("v2 = %d", code)
	}
}

func TestSugar_HandlerErrorCode(t *testing.T) {
	mux, r := newMux()
	Get(r, "/boom", func(*http.Request) (any, error) { return nil, errors.New("boom") })
	code, env := do(t, mux, http.MethodGet, "/boom", "")
	if code != http.StatusInternalServerError || env.Code != perr.ErrorCodeUnknown {
		t.Fatalf("got %d %+v", code, env)
	}
}
