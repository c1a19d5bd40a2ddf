package models

import "strings"

const keyPrefix = "ratelimit"

// SanitizeKeySegment escapes the key delimiter so an identifier containing
// ':' cannot address another actor's window.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// WindowKey is the counter key for an (actor, operation) pair.
func WindowKey(actor, operation string) string {
	return keyPrefix + ":" + SanitizeKeySegment(actor) + ":" + SanitizeKeySegment(operation)
}
