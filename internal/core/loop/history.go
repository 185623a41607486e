package loop

import "strings"

// Role is the author of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one validated history entry
type Turn struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// RawTurn is an unvalidated history entry as stored by upstream systems,
// which label authors loosely
type RawTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

var roleAliases = map[string]Role{
	"user":      RoleUser,
	"human":     RoleUser,
	"customer":  RoleUser,
	"lead":      RoleUser,
	"assistant": RoleAssistant,
	"ai":        RoleAssistant,
	"bot":       RoleAssistant,
	"model":     RoleAssistant,
	"agent":     RoleAssistant,
	"system":    RoleSystem,
}

// ParseRole maps a loose role label to a Role
func ParseRole(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// Coerce turns loose history into Turns, dropping entries with an unknown
// role or blank content. Order is preserved
func Coerce(raw []RawTurn) []Turn {
	out := make([]Turn, 0, len(raw))
	for _, rt := range raw {
		role, ok := ParseRole(rt.Role)
		if !ok || strings.TrimSpace(rt.Content) == "" {
			continue
		}
		out = append(out, Turn{Role: role, Content: rt.Content})
	}
	return out
}

// last returns at most n trailing turns
func last(h []Turn, n int) []Turn {
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}
