// Package redact scrubs sensitive information from strings before they are
// logged or returned in error responses. Provider API keys, bearer tokens,
// and database connection strings must never reach logs or clients, and raw
// model output is bounded before logging so a misbehaving provider cannot
// flood the log stream.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"

	// MaxSnippetLen bounds raw provider output included in logs.
	MaxSnippetLen = 512
)

// Precompiled regex patterns
var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Provider API keys: Groq/OpenAI-style sk-/gsk_ prefixes and generic
	// key=value assignments
	providerKeyRegex = regexp.MustCompile(`\b(sk|gsk)[-_][A-Za-z0-9_\-]{8,}`)
	apiKeyRegex      = regexp.MustCompile(
		`(?i)(api[_-]?key|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Bearer tokens in header dumps and three-part JWTs
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)
	jwtRegex    = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	patterns = []*regexp.Regexp{
		dbConnRegex, providerKeyRegex, apiKeyRegex, bearerRegex, jwtRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dbConnRegex:      RedactedCredentialPlaceholder,
		providerKeyRegex: RedactedKeyPlaceholder,
		apiKeyRegex:      RedactedKeyPlaceholder,
		bearerRegex:      RedactedTokenPlaceholder,
		jwtRegex:         RedactedTokenPlaceholder,
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, patternPlaceholders[pattern])
	}

	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Snippet redacts and truncates free-form text, e.g. raw model output,
// so it can be logged safely.
func Snippet(input string) string {
	redacted := String(input)
	if len(redacted) > MaxSnippetLen {
		return redacted[:MaxSnippetLen] + "..."
	}
	return redacted
}
