// Package redact removes credentials from error text before it is logged.
// Gateway and flag store errors can carry request URLs with Trello keys,
// connection strings with passwords, and bearer tokens.
package redact

import "regexp"

// Placeholders written in place of redacted values.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order. Replacements may use submatches to keep the name of
// the redacted field.
var rules = []rule{
	// user:password@ in postgres://, redis:// and http(s):// URLs
	{regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/\s@]*@`), "${1}" + RedactedCredentialPlaceholder + "@"},
	// JWTs anywhere, including Authorization headers
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), RedactedJWTPlaceholder},
	{regexp.MustCompile(`(?i)\b(bearer\s+)[A-Za-z0-9_\-.~+/]+=*`), "${1}" + RedactionPlaceholder},
	// key=..., token=..., api_key=... in query strings and key=value text
	{
		regexp.MustCompile(`(?i)\b(key|token|api[_-]?key|secret|password|access[_-]?token)(=|:\s*)[^&\s"':,;]+`),
		"${1}${2}" + RedactedKeyPlaceholder,
	},
}

// String redacts credentials from s.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

// Error redacts credentials from err.Error(). A nil error gives "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
