package ai

import "strings"

// FallbackNote translates an upstream failure into a user-safe suffix appended
// to fallback replies. The raw error is logged by the caller, never shown.
func FallbackNote(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "permission_denied"):
		return "(AI unavailable: the configured API key was rejected, showing a canned reply instead)"
	case strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "rate limit"):
		return "(AI unavailable: the API quota was exceeded, showing a canned reply instead)"
	case strings.Contains(msg, "safety"),
		strings.Contains(msg, "blocked"):
		return "(AI unavailable: the provider's safety filter blocked this message, showing a canned reply instead)"
	case strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "timeout"):
		return "(AI unavailable: the request timed out, showing a canned reply instead)"
	default:
		return "(AI unavailable: showing a canned reply instead)"
	}
}
