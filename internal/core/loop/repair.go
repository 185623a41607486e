package loop

import (
	"strings"

	"chatguard/internal/core/sanitize"
)

// repairTurns is how much history is echoed into the directive
const repairTurns = 3

// RepairPrompt builds the system directive for the corrective call.
// User text is sanitized and PII redacted, the last three turns are redacted
// and stripped of control characters. Output is deterministic
func RepairPrompt(userText string, history []Turn) string {
	var b strings.Builder
	b.WriteString("You are repairing a conversation that has started to repeat itself.\n")
	b.WriteString("Your previous reply was almost identical to the one before it, or both were apologies.\n\n")

	b.WriteString("Recent conversation:\n")
	recent := last(history, repairTurns)
	if len(recent) == 0 {
		b.WriteString("(no history)\n")
	}
	for _, t := range recent {
		content := sanitize.Controls(sanitize.RedactPII(t.Content))
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(content))
		b.WriteByte('\n')
	}

	b.WriteString("\nLatest user message:\n")
	b.WriteString(strings.TrimSpace(sanitize.Clean(userText)))
	b.WriteString("\n\n")

	b.WriteString("Instructions:\n")
	b.WriteString("1. Work out silently why the last replies did not move the conversation forward. Do not describe this reasoning.\n")
	b.WriteString("2. Do not apologize and do not ask the user to rephrase or repeat themselves.\n")
	b.WriteString("3. Answer the latest user message directly with new information or one concrete next step.\n")
	b.WriteString("4. Output only the new reply text, nothing else.\n")
	return b.String()
}
