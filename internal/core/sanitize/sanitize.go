// Package sanitize scrubs text entering and leaving the reply pipeline.
// Input strips control characters and redacts prompt injection and jailbreak phrasing,
// RedactPII masks emails and phone numbers before user text is echoed into model
// context or logs. Every function here is total and idempotent on its own output
package sanitize

import (
	"regexp"
)

// Redaction markers. None of them can be matched by the patterns below,
// which keeps every function idempotent
const (
	InjectionMarker = "[REDACTED_INJECTION]"
	JailbreakMarker = "[REDACTED_JAILBREAK]"
	EmailMarker     = "[EMAIL_REDACTED]"
	PhoneMarker     = "[PHONE_REDACTED]"
)

const (
	injVerb = `(?:ignor(?:e|es|ed|ing)|forget(?:s|ting)?|forgotten|bypass(?:es|ed|ing)?|overrid(?:e|es|den|ing)|disregard(?:s|ed|ing)?)`
	injNoun = `(?:previous|prior|earlier|above|original|system|security)\s+(?:instructions?|rules?|protocols?|prompts?|guidelines?|directives?)`
	// window allows up to four words between verb and noun phrase
	injGap = `(?:[\s,;:'"-]+[\p{L}\p{N}']+){0,4}?[\s,;:'"-]+`
)

var (
	injectionRe = regexp.MustCompile(`(?i)\b(?:` +
		injVerb + injGap + injNoun + `\b` +
		`|` +
		injNoun + injGap + injVerb + `\b)`)

	jailbreakRe = regexp.MustCompile(`(?i)\b(?:developer\s+mode|do\s+anything\s+now|dan\s+mode|unfiltered(?:\s+mode)?|jailbreak(?:s|ing|ed)?|jailbroken)\b`)

	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)

	// candidate phone spans, confirmed by digit count in redactPhone.
	// Groups after the first need two digits so a count like "2 times" stays outside
	phoneRe = regexp.MustCompile(`\+?\b(?:\d{1,4}(?:[ \-]\d{2,4}){2,4}|\d{10,15})\b`)
)

// minPhoneDigits is the shortest digit run treated as a phone number
const minPhoneDigits = 10

// Input strips control characters then redacts injection and jailbreak phrases
func Input(s string) string {
	if s == "" {
		return s
	}
	s = Controls(s)
	s = injectionRe.ReplaceAllLiteralString(s, InjectionMarker)
	s = jailbreakRe.ReplaceAllLiteralString(s, JailbreakMarker)
	return s
}

// RedactPII replaces email shaped and phone shaped spans with markers
func RedactPII(s string) string {
	if s == "" {
		return s
	}
	s = emailRe.ReplaceAllLiteralString(s, EmailMarker)
	s = phoneRe.ReplaceAllStringFunc(s, redactPhone)
	return s
}

// Clean is Input followed by RedactPII, used for anything user authored that
// gets interpolated into model context
func Clean(s string) string { return RedactPII(Input(s)) }

func redactPhone(m string) string {
	n := 0
	for i := 0; i < len(m); i++ {
		if m[i] >= '0' && m[i] <= '9' {
			n++
		}
	}
	if n < minPhoneDigits {
		return m
	}
	return PhoneMarker
}

// HasInjection reports whether s carries an injection or jailbreak phrase
func HasInjection(s string) bool {
	return injectionRe.MatchString(s) || jailbreakRe.MatchString(s)
}
