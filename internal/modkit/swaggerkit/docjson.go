package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"chatguard/internal/platform/config"

	docs "chatguard/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed spec before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is a seam so tests can feed a broken document
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// tagDocs describes the route groups shown in the UI
var tagDocs = []map[string]any{
	{"name": "Meta", "description": "Liveness, readiness and build info"},
	{"name": "Guard", "description": "Per entity circuit breaker and sync provenance"},
	{"name": "Reply", "description": "Sanitize, triage, generate and pace chat replies"},
}

// Register adds a spec mutator, call it from module init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// Spec renders the served document with defaults and mutators applied
func Spec() (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		return nil, err
	}

	ensureServers(spec, "/api/v1")
	if _, ok := spec["tags"]; !ok {
		tags := make([]any, len(tagDocs))
		for i, t := range tagDocs {
			tags[i] = t
		}
		spec["tags"] = tags
	}

	if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + v
			}
		}
	}

	ensureErrorSchema(spec)
	addDefaultResponse(spec, "500", errorResponse("Internal Server Error", 500, 1, "panic recovered"))
	addDefaultResponse(spec, "400", errorResponse("Bad Request", 400, 8, "mood must be one of [PROFESSIONAL CASUAL]"))

	for _, m := range mutators {
		m(spec)
	}
	return spec, nil
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := Spec()
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers pins the document to OAS 3.0.3 with a servers array
// the bundled UI does not render 3.1 yet
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorSchema adds the error envelope model if missing
func ensureErrorSchema(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(status string, statusCode, code int, msg string) map[string]any {
	return map[string]any{
		"description": status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": statusCode,
					"status":      status,
					"code":        code,
					"error":       msg,
					"request_id":  "chatguard/abc-000001",
				},
			},
		},
	}
}

// addDefaultResponse puts resp under status on every operation lacking one
func addDefaultResponse(spec map[string]any, status string, resp map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			if _, exists := resps[status]; !exists {
				resps[status] = resp
			}
		}
	}
}
