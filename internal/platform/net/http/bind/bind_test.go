package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "chatguard/internal/platform/errors"
	"chatguard/internal/platform/testkit"
)

type message struct {
	LeadID string `json:"lead_id" validate:"required,min=2,ident"`
	Text   string `json:"text" validate:"max=10"`
	Hidden string `json:"-" validate:"omitempty,min=3"`
	Plain  int    `validate:"omitempty,min=1"`
}

func req(method, body string) *http.Request {
	return httptest.NewRequest(method, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		body      string
		opts      []JSONOptions
		wantCode  perr.ErrorCode
		wantField string
		wantMsg   string
	}{
		{name: "ok", body: `{"lead_id":"L-1","text":"hi"}`, wantCode: perr.ErrorCodeUnknown},
		{name: "empty_post", body: ``, wantCode: perr.ErrorCodeJSON},
		{name: "empty_get", method: http.MethodGet, body: ``, wantCode: perr.ErrorCodeUnknown},
		{name: "broken", body: `{"lead_id":`, wantCode: perr.ErrorCodeJSON},
		{name: "unknown_field", body: `{"lead_id":"L-1","x":1}`, wantCode: perr.ErrorCodeJSON},
		{name: "unknown_allowed", body: `{"lead_id":"L-1","x":1}`, opts: []JSONOptions{{}}, wantCode: perr.ErrorCodeUnknown},
		{name: "too_big", body: `{"lead_id":"L-1","text":"` + strings.Repeat("a", 64) + `"}`, opts: []JSONOptions{{MaxBytes: 16, DisallowUnknown: true}}, wantCode: perr.ErrorCodeJSON},
		{name: "required", body: `{"text":"hi"}`, wantCode: perr.ErrorCodeValidation, wantField: "lead_id"},
		{name: "short_min", body: `{"lead_id":"L"}`, wantCode: perr.ErrorCodeValidation, wantField: "lead_id", wantMsg: "lead_id must be at least 2"},
		{name: "short_max", body: `{"lead_id":"L-1","text":"way too long"}`, wantCode: perr.ErrorCodeValidation, wantField: "text", wantMsg: "text must be at most 10"},
		{name: "ident", body: `{"lead_id":"L 1"}`, wantCode: perr.ErrorCodeValidation, wantField: "lead_id", wantMsg: "lead_id must not contain spaces or control characters"},
		{name: "ident_control", body: `{"lead_id":"L\u00071"}`, wantCode: perr.ErrorCodeValidation, wantField: "lead_id"},
		{name: "no_json_tag", body: `{"lead_id":"L-1","Plain":-1}`, wantCode: perr.ErrorCodeValidation, wantField: "Plain"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			method := tc.method
			if method == "" {
				method = http.MethodPost
			}
			_, err := ParseJSON[message](req(method, tc.body), tc.opts...)
			if tc.wantCode == perr.ErrorCodeUnknown {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if perr.CodeOf(err) != tc.wantCode {
				t.Fatalf("code = %v (%v), want %v", perr.CodeOf(err), err, tc.wantCode)
			}
			e, _ := perr.As(err)
			if e.Field() != tc.wantField {
				t.Fatalf("field = %q, want %q", e.Field(), tc.wantField)
			}
			if tc.wantMsg != "" && err.Error() != tc.wantMsg {
				t.Fatalf("msg = %q, want %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestParseJSON_AllowEmptyBody(t *testing.T) {
	type opt struct {
		Note string `json:"note"`
	}
	got, err := ParseJSON[opt](req(http.MethodPost, ``), JSONOptions{AllowEmptyBody: true, MaxBytes: 1 << 10})
	if err != nil || got.Note != "" {
		t.Fatalf("got %+v %v", got, err)
	}
}

func TestParseJSON_TrailingData(t *testing.T) {
	testkit.Swap(t, &jsonMore, func(*json.Decoder) bool { return true })

	_, err := ParseJSON[message](req(http.MethodPost, `{"lead_id":"L-1"}`))
	if perr.CodeOf(err) != perr.ErrorCodeJSON || !strings.Contains(err.Error(), "trailing") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseJSON_NonStructTarget(t *testing.T) {
	_, err := ParseJSON[map[string]any](req(http.MethodPost, `{"a":1}`))
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("err = %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	type shout struct {
		Word string `json:"word" validate:"upper_only"`
	}
	err := RegisterValidation("upper_only", "{0} must be upper case", func(fl FieldLevel) bool {
		return strings.ToUpper(fl.Field().String()) == fl.Field().String()
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := ParseJSON[shout](req(http.MethodPost, `{"word":"HEY"}`)); err != nil {
		t.Fatalf("valid word rejected: %v", err)
	}
	_, err = ParseJSON[shout](req(http.MethodPost, `{"word":"hey"}`))
	if err == nil || err.Error() != "word must be upper case" {
		t.Fatalf("err = %v", err)
	}
}

func TestValidationFieldAndMessage_Foreign(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil = %q %q", f, m)
	}
	if f, m := ValidationFieldAndMessage(perr.JSONErrf("bad")); f != "" || m != "bad" {
		t.Fatalf("foreign = %q %q", f, m)
	}
}
