package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "chatguard/internal/platform/net/http"
	"chatguard/internal/platform/testkit"
)

func fetch(t *testing.T) (int, map[string]any) {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &spec)
	return rec.Code, spec
}

func TestDocJSON_Defaults(t *testing.T) {
	code, spec := fetch(t)
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	info := spec["info"].(map[string]any)
	if info["title"] != "Chatguard API" || info["version"] != "0.1.0" {
		t.Fatalf("info = %v", info)
	}

	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/guard/check", "/guard/propagate", "/reply/compose", "/reply/segment", "/meta/ready"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
	post := paths["/reply/compose"].(map[string]any)["post"].(map[string]any)
	resps := post["responses"].(map[string]any)
	for _, s := range []string{"200", "400", "500", "503"} {
		if _, ok := resps[s]; !ok {
			t.Fatalf("compose missing %s response", s)
		}
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatal("ErrorResponse schema not injected")
	}
}

func TestDocJSON_TitleSuffixAndMutators(t *testing.T) {
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(dev)")
	testkit.Swap(t, &mutators, nil)
	Register(func(spec map[string]any) { spec["x-mutated"] = true })
	Register(nil)

	_, spec := fetch(t)
	if spec["info"].(map[string]any)["title"] != "Chatguard API (dev)" {
		t.Fatalf("title = %v", spec["info"])
	}
	if spec["x-mutated"] != true || len(mutators) != 1 {
		t.Fatalf("mutator not applied: %v", spec["x-mutated"])
	}
}

func TestDocJSON_BrokenDocument(t *testing.T) {
	testkit.Swap(t, &docReader, func() string { return "{not json" })

	if code, _ := fetch(t); code != http.StatusInternalServerError {
		t.Fatalf("code = %d", code)
	}
}

func TestMount_Disabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestMount_RedirectsToUI(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Base, nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/api/docs/index.html" {
		t.Fatalf("code = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
}
