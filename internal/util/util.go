package util

import "strings"

// NormalizeEmail canonicalizes an email for storage and lookup.
// Uniqueness is case-insensitive: "A@x.com" and "a@x.com" are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
