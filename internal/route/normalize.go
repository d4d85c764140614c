package route

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRegex matches one or more whitespace characters
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// invalidCharRegex matches anything that cannot appear in a route segment
	invalidCharRegex = regexp.MustCompile(`[^A-Za-z0-9/_-]`)

	// repeatedSlashRegex matches runs of two or more slashes
	repeatedSlashRegex = regexp.MustCompile(`/{2,}`)

	// externalURLRegex matches absolute http(s) URLs
	externalURLRegex = regexp.MustCompile(`(?i)^https?://`)
)

// SanitizeSegment reduces a raw route token to its segment form:
// 1. Trim leading/trailing whitespace
// 2. Remove all internal whitespace
// 3. Drop characters outside [A-Za-z0-9/_-]
// 4. Collapse repeated slashes
// 5. Strip leading/trailing slashes
//
// Casing is preserved. The result never begins or ends with a slash.
func SanitizeSegment(value string) string {
	s := strings.TrimSpace(value)
	s = whitespaceRegex.ReplaceAllString(s, "")
	s = invalidCharRegex.ReplaceAllString(s, "")
	s = repeatedSlashRegex.ReplaceAllString(s, "/")
	return strings.Trim(s, "/")
}

// NormalizeKey returns the canonical comparison key for a route token.
// "/NAMC/", "namc" and " /Namc " all normalize to "/namc/". Empty input
// normalizes to "/".
func NormalizeKey(value string) string {
	return wrap(strings.ToLower(SanitizeSegment(value)))
}

// FormatPath returns the display path for a route, preserving casing.
// It must only be used for the human-facing route field, never for equality.
func FormatPath(value string) string {
	return wrap(SanitizeSegment(value))
}

// plainPrefix is the loosely cleaned prefix used by the second arm of prefix
// matching: trimmed, slashes stripped, lowercased, nothing else removed.
func plainPrefix(value string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(value), "/"))
}

// IsExternalURL reports whether a route value is an absolute http(s) URL.
// Callers treat such routes as redirect targets rather than internal routes.
func IsExternalURL(value string) bool {
	return externalURLRegex.MatchString(strings.TrimSpace(value))
}

func wrap(segment string) string {
	if segment == "" {
		return "/"
	}
	return "/" + segment + "/"
}
