// Package docs registers the OpenAPI document served by swaggerkit
// keep paths in step with the swagger annotations on the handlers
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.1.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthResponse"}}}}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyResponse"}}}}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BuildInfo"}}}}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ServiceResponse"}}}}}}},
    "/meta/pipeline": {"get": {"tags": ["Meta"], "summary": "Reply pipeline version and build", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PipelineResponse"}}}}}}},

    "/guard/check": {"post": {"tags": ["Guard"], "summary": "Count one sighting of an entity and report whether to process it", "requestBody": {"$ref": "#/components/requestBodies/Entity"}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Check"}}}}}}},
    "/guard/reset": {"post": {"tags": ["Guard"], "security": [{"BearerAuth": []}], "summary": "Forget the breaker state of one entity", "requestBody": {"$ref": "#/components/requestBodies/Entity"}, "responses": {"200": {"$ref": "#/components/responses/Ack"}, "401": {"description": "missing or invalid bearer token"}}}},
    "/guard/clear": {"post": {"tags": ["Guard"], "security": [{"BearerAuth": []}], "summary": "Forget the breaker state of every entity", "responses": {"200": {"$ref": "#/components/responses/Ack"}, "401": {"description": "missing or invalid bearer token"}}}},
    "/guard/propagate": {"post": {"tags": ["Guard"], "summary": "Decide whether an update may be synced toward a system", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PropagateInput"}}}}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PropagateResult"}}}}}}},
    "/guard/internal": {"post": {"tags": ["Guard"], "summary": "Report whether this system recently wrote the entity", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/InternalInput"}}}}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Internal"}}}}}}},
    "/guard/record": {"post": {"tags": ["Guard"], "security": [{"BearerAuth": []}], "summary": "Log the provenance of an update", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RecordInput"}}}}, "responses": {"200": {"$ref": "#/components/responses/Ack"}, "401": {"description": "missing or invalid bearer token"}}}},
    "/guard/trips": {"get": {"tags": ["Guard"], "summary": "Recent breaker trips", "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 500}}], "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/TripEvent"}}}}}}}},

    "/reply/compose": {"post": {"tags": ["Reply"], "summary": "Run the full reply pipeline for one inbound message", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ComposeInput"}}}}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Composed"}}}}, "503": {"description": "model unavailable"}}}},
    "/reply/sanitize": {"post": {"tags": ["Reply"], "summary": "Strip control characters, redact injection phrasing and PII", "requestBody": {"$ref": "#/components/requestBodies/Text"}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SanitizeOutput"}}}}}}},
    "/reply/sentiment": {"post": {"tags": ["Reply"], "summary": "Triage a message as RISK, POSITIVE or NEUTRAL", "requestBody": {"$ref": "#/components/requestBodies/Text"}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SentimentResult"}}}}}}},
    "/reply/loop": {"post": {"tags": ["Reply"], "summary": "Compare two replies and build the repair directive when they loop", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoopInput"}}}}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoopOutput"}}}}}}},
    "/reply/humanize": {"post": {"tags": ["Reply"], "summary": "Rewrite a reply so it reads like a person typing", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HumanizeInput"}}}}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TextOutput"}}}}}}},
    "/reply/segment": {"post": {"tags": ["Reply"], "summary": "Split a reply into chat bubbles with typing delays", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SegmentInput"}}}}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Bubble"}}}}}}}},
    "/reply/pause": {"post": {"tags": ["Reply"], "summary": "Compute the pause before the first bubble", "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PauseInput"}}}}, "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PauseOutput"}}}}}}}
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {"type": "http", "scheme": "bearer", "description": "CORE_GUARD_ADMIN_TOKEN, only enforced when set"}
    },
    "requestBodies": {
      "Entity": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EntityInput"}}}},
      "Text": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TextInput"}}}}
    },
    "responses": {
      "Ack": {"description": "ok", "content": {"application/json": {"schema": {"type": "object", "properties": {"ok": {"type": "boolean"}}}}}}
    },
    "schemas": {
      "HealthResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "service": {"type": "string", "example": "chatguard-api"}, "started": {"type": "string"}, "now": {"type": "string"}}},
      "ReadyCheck": {"type": "object", "properties": {"name": {"type": "string"}, "status": {"type": "string", "enum": ["ok", "fail", "skipped"]}, "latency_ms": {"type": "number"}, "error": {"type": "string"}}},
      "ReadyResponse": {"type": "object", "properties": {"status": {"type": "string", "enum": ["ok", "fail"]}, "checks": {"type": "array", "items": {"$ref": "#/components/schemas/ReadyCheck"}}, "now": {"type": "string"}}},
      "BuildInfo": {"type": "object", "properties": {"service": {"type": "string"}, "version": {"type": "string"}, "commit": {"type": "string"}, "date": {"type": "string"}, "pipeline": {"type": "integer"}}},
      "ServiceResponse": {"type": "object", "properties": {"name": {"type": "string"}, "started": {"type": "string"}, "uptime": {"type": "integer"}}},
      "PipelineResponse": {"type": "object", "properties": {"pipeline_version": {"type": "integer"}, "build": {"$ref": "#/components/schemas/BuildInfo"}}},

      "EntityInput": {"type": "object", "required": ["entity_id"], "properties": {"entity_id": {"type": "string", "maxLength": 200}}},
      "Check": {"type": "object", "properties": {"should_process": {"type": "boolean"}, "reason": {"type": "string"}, "count": {"type": "integer"}}},
      "PropagateInput": {"type": "object", "required": ["source", "direction"], "properties": {"source": {"type": "string", "enum": ["hubspot_webhook", "internal_api", "auto_reassign", "manual_reassign", "sync_job", "unknown"]}, "direction": {"type": "string", "enum": ["to_hubspot", "to_supabase"]}}},
      "PropagateResult": {"type": "object", "properties": {"propagate": {"type": "boolean"}}},
      "InternalInput": {"type": "object", "required": ["entity_id"], "properties": {"entity_id": {"type": "string"}, "window_ms": {"type": "integer", "minimum": 1}}},
      "Internal": {"type": "object", "properties": {"was_internal": {"type": "boolean"}, "source": {"type": "string"}}},
      "RecordInput": {"type": "object", "required": ["entity_id", "source"], "properties": {"entity_id": {"type": "string"}, "source": {"type": "string"}, "details": {"type": "object"}}},
      "TripEvent": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "entity_id": {"type": "string"}, "count": {"type": "integer"}, "reason": {"type": "string"}, "at": {"type": "string", "format": "date-time"}}},

      "Turn": {"type": "object", "required": ["role", "content"], "properties": {"role": {"type": "string", "enum": ["user", "assistant", "system"]}, "content": {"type": "string"}}},
      "ComposeInput": {"type": "object", "required": ["incoming"], "properties": {"incoming": {"type": "string"}, "previous_reply": {"type": "string"}, "history": {"type": "array", "items": {"$ref": "#/components/schemas/Turn"}}, "user_name": {"type": "string"}, "mood": {"type": "string", "enum": ["PROFESSIONAL", "CASUAL"]}, "persona": {"type": "string"}, "lead_id": {"type": "string"}, "source": {"type": "string"}, "to": {"type": "string"}}},
      "Bubble": {"type": "object", "properties": {"text": {"type": "string"}, "delay_ms": {"type": "integer"}}},
      "Send": {"type": "object", "properties": {"text": {"type": "string"}, "wait_ms": {"type": "integer"}}},
      "SentimentResult": {"type": "object", "properties": {"sentiment": {"type": "string", "enum": ["RISK", "POSITIVE", "NEUTRAL"]}, "score": {"type": "number"}, "triggers": {"type": "array", "items": {"type": "string"}}}},
      "LoopResult": {"type": "object", "properties": {"status": {"type": "string", "enum": ["OK", "LOOP_DETECTED", "ESCALATE_TO_HUMAN"]}, "confidence": {"type": "number"}, "similarity_score": {"type": "integer"}, "loop_depth": {"type": "integer"}}},
      "Composed": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "reply": {"type": "string"}, "bubbles": {"type": "array", "items": {"$ref": "#/components/schemas/Bubble"}}, "schedule": {"type": "array", "items": {"$ref": "#/components/schemas/Send"}}, "pause_ms": {"type": "integer"}, "sentiment": {"$ref": "#/components/schemas/SentimentResult"}, "loop": {"$ref": "#/components/schemas/LoopResult"}, "repaired": {"type": "boolean"}, "fallback": {"type": "boolean"}, "issues": {"type": "array", "items": {"type": "string"}}, "probe": {"type": "boolean"}, "blocked": {"type": "string"}, "pipeline": {"type": "integer"}}},
      "TextInput": {"type": "object", "properties": {"text": {"type": "string"}}},
      "TextOutput": {"type": "object", "properties": {"text": {"type": "string"}}},
      "SanitizeOutput": {"type": "object", "properties": {"text": {"type": "string"}, "injection": {"type": "boolean"}}},
      "LoopInput": {"type": "object", "properties": {"previous": {"type": "string"}, "candidate": {"type": "string"}, "history": {"type": "array", "items": {"$ref": "#/components/schemas/Turn"}}, "user_text": {"type": "string"}}},
      "LoopOutput": {"allOf": [{"$ref": "#/components/schemas/LoopResult"}, {"type": "object", "properties": {"similarity": {"type": "integer"}, "repair": {"type": "string"}}}]},
      "HumanizeInput": {"type": "object", "properties": {"text": {"type": "string"}, "mood": {"type": "string", "enum": ["PROFESSIONAL", "CASUAL"]}, "user_name": {"type": "string"}, "seed": {"type": "integer"}}},
      "SegmentInput": {"type": "object", "properties": {"text": {"type": "string"}, "options": {"type": "object", "properties": {"max_bubbles": {"type": "integer", "maximum": 10}, "base_delay_ms": {"type": "integer"}, "ms_per_word": {"type": "integer"}}}, "seed": {"type": "integer"}}},
      "PauseInput": {"type": "object", "properties": {"incoming": {"type": "string"}, "response": {"type": "string"}, "seed": {"type": "integer"}}},
      "PauseOutput": {"type": "object", "properties": {"pause_ms": {"type": "integer"}}}
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "Chatguard API",
	Description:      "Reply pipeline and cross system loop guard",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
