package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Outbound content filtering. These keep model replies from leaking prompt
// scaffolding, tool markers or infrastructure names to a customer

const (
	// MaxMessageChars is the hard cap for one outgoing message
	MaxMessageChars = 4096
	// WhatsAppChars is the soft cap applied when formatting for WhatsApp
	WhatsAppChars = 4000
	whatsAppKeep  = 3950
)

// internal markers the agent runtime injects into model context
var internalMarkers = regexp.MustCompile(`(?i)AGENT_KNOWLEDGE_BASE|INTERNAL_TOOL|SKILL_`)

// sensitive spans removed outright by Response
var sensitive = []*regexp.Regexp{
	// prompt and vendor leaks
	regexp.MustCompile(`(?i)system prompt`),
	regexp.MustCompile(`(?i)prompt instructions`),
	regexp.MustCompile(`(?i)ignore previous instructions`),
	regexp.MustCompile(`(?i)you are an AI`),
	regexp.MustCompile(`(?i)\bopenai\b|\banthropic\b|\bgemini\b|\bdialogflow\b`),

	// template variables and tags
	regexp.MustCompile(`\{\{.*?\}\}`),
	regexp.MustCompile(`(?i)<internal_context>[\s\S]*?</internal_context>`),
	regexp.MustCompile(`(?i)\[INTERNAL\][\s\S]*?\[/INTERNAL\]`),
	regexp.MustCompile(`</?[A-Za-z_][A-Za-z0-9_\-]*(?:\s[^<>]*)?>`),

	// skill and tool markers
	regexp.MustCompile(`(?i)!!! ACTIVE SKILL ACTIVATED:.*!!!`),
	regexp.MustCompile(`(?i)ACTIVE SKILL ACTIVATED:.*`),
	regexp.MustCompile(`(?i)CAPABILITIES:.*`),
	regexp.MustCompile(`(?i)internal_rules:.*`),
	regexp.MustCompile(`(?i)available_tools:.*`),

	// code
	regexp.MustCompile(`(?i)function\s+\w+\s*\(`),
	regexp.MustCompile(`(?i)const\s+\w+\s*=`),
	regexp.MustCompile(`(?i)\.from\(['"].*?['"]\)`),

	// data and credentials
	regexp.MustCompile(`(?i)SELECT \* FROM`),
	regexp.MustCompile(`(?i)\bAPI[_\s]?KEY\b`),
	regexp.MustCompile(`(?i)\bSECRET\b`),
	regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-_.]+`),

	// deployment
	regexp.MustCompile(`(?i)edge[\s-]?function`),
	regexp.MustCompile(`(?i)invoke\(`),
	regexp.MustCompile(`(?i)deno\.env|deno\.`),
}

// friendly rewrites applied after removal
var friendly = []struct {
	re  *regexp.Regexp
	out string
}{
	{regexp.MustCompile(`(?i)\bsupabase\b`), "our system"},
	{regexp.MustCompile(`(?i)\bdatabase\b`), "our records"},
	{regexp.MustCompile(`(?i)\bfunction\b`), "feature"},
	{regexp.MustCompile(`\bAPI\b`), "service"},
	{regexp.MustCompile(`(?i)\bas an ai\b`), "actually"},
	{regexp.MustCompile(`(?i)\blanguage model\b`), "person"},
	{regexp.MustCompile(`(?i)\bhow can i assist\b`), "how can i help"},
	{regexp.MustCompile(`(?i)\bunauthorized\b`), "not allowed"},
}

var (
	blankRuns = regexp.MustCompile(`\n{3,}`)
	boldMd    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicMd  = regexp.MustCompile(`\*([^*]+)\*`)
	boldTmp   = regexp.MustCompile(`\x00B\x00(.+?)\x00/B\x00`)
	bulletMd  = regexp.MustCompile(`(?m)^\s*[*\-]\s+`)
	aiisms    = regexp.MustCompile(`(?i)certainly!|of course!`)
	iUnderst  = regexp.MustCompile(`(?i)I understand\.`)
)

// Scrub removes runtime markers and enforces the hard length cap
func Scrub(s string) string {
	s = internalMarkers.ReplaceAllLiteralString(s, "")
	s = truncate(s, MaxMessageChars, MaxMessageChars-3, "...")
	return strings.TrimSpace(s)
}

// Response removes sensitive spans and rewrites technical vocabulary
func Response(s string) string {
	for _, re := range sensitive {
		s = re.ReplaceAllLiteralString(s, "")
	}
	for _, f := range friendly {
		s = f.re.ReplaceAllLiteralString(s, f.out)
	}
	s = blankRuns.ReplaceAllLiteralString(s, "\n\n")
	return strings.TrimSpace(s)
}

// WhatsApp converts markdown emphasis to WhatsApp emphasis
// **bold** becomes *bold* and *italic* becomes _italic_
func WhatsApp(s string) string {
	// bold goes through a NUL placeholder so the italic pass can't see it
	s = strings.ReplaceAll(s, "\x00", "")
	s = boldMd.ReplaceAllString(s, "\x00B\x00${1}\x00/B\x00")
	s = italicMd.ReplaceAllString(s, "_${1}_")
	s = boldTmp.ReplaceAllString(s, "*${1}*")
	s = truncate(s, WhatsAppChars, whatsAppKeep, "\n\n...(truncated)")
	return strings.TrimSpace(s)
}

// Format is the legacy WhatsApp formatter that also flattens bullets and
// strips stock assistant interjections
func Format(s string) string {
	s = boldMd.ReplaceAllString(s, "*${1}*")
	s = bulletMd.ReplaceAllLiteralString(s, "- ")
	s = aiisms.ReplaceAllLiteralString(s, "")
	s = iUnderst.ReplaceAllLiteralString(s, "ok, cool.")
	s = truncate(s, WhatsAppChars, whatsAppKeep, "...")
	return strings.TrimSpace(s)
}

// Safety is the verdict of Validate
type Safety struct {
	Safe   bool     `json:"safe"`
	Issues []string `json:"issues,omitempty"`
}

var (
	mentionsCaps   = regexp.MustCompile(`(?i)capabilities|internal systems`)
	mentionsSkill  = regexp.MustCompile(`(?i)skill.*activate|activated skill`)
	mentionsMarker = regexp.MustCompile(`(?i)<internal|\[INTERNAL\]`)
	codeLike       = regexp.MustCompile(`(?i)\bfunction\b|\bconst\b|\blet\s+\w+\s*=|\bvar\s+\w+\s*=|=>`)
	techTerms      = []string{"supabase", "edge function", "database query", "API key", "invoke", "endpoint", "payload"}
	techRes        = compileTerms(techTerms)
)

func compileTerms(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return out
}

// Validate lists the reasons a reply should not reach a customer as is
func Validate(s string) Safety {
	var issues []string
	if mentionsCaps.MatchString(s) {
		issues = append(issues, "Response mentions 'capabilities' or 'internal systems'")
	}
	if mentionsSkill.MatchString(s) {
		issues = append(issues, "Response mentions skill activation")
	}
	if mentionsMarker.MatchString(s) {
		issues = append(issues, "Response contains internal context markers")
	}
	if codeLike.MatchString(s) {
		issues = append(issues, "Response contains code-like syntax")
	}
	for i, re := range techRes {
		if re.MatchString(s) {
			issues = append(issues, `Response contains technical term: "`+techTerms[i]+`"`)
		}
	}
	return Safety{Safe: len(issues) == 0, Issues: issues}
}

// Leak is the verdict of DetectSkillLeak
type Leak struct {
	HasLeak    bool    `json:"has_leak"`
	Confidence float64 `json:"confidence"`
}

var leakProbes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what (skills?|capabilities|functions?|tools?) (do you|can you)`),
	regexp.MustCompile(`(?i)list your (skills?|capabilities|functions?)`),
	regexp.MustCompile(`(?i)show me your (prompt|instructions|capabilities)`),
	regexp.MustCompile(`(?i)what can you do`),
	regexp.MustCompile(`(?i)tell me about your (functions?|abilities)`),
}

// DetectSkillLeak flags inbound messages probing for the agent's tools or prompt
func DetectSkillLeak(s string) Leak {
	for _, re := range leakProbes {
		if re.MatchString(s) {
			return Leak{HasLeak: true, Confidence: 0.9}
		}
	}
	return Leak{Confidence: 0.1}
}

// truncate cuts s to keep runes plus suffix when it exceeds limit runes
func truncate(s string, limit, keep int, suffix string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == keep {
			return s[:i] + suffix
		}
		n++
	}
	return s
}
