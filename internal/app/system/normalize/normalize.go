// Package normalize provides canonical forms for user-supplied strings
// before they are persisted or used in lookups.
package normalize

import "strings"

// Email lowercases and trims an email address. Lookups and the unique
// index both operate on this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Unit trims and lowercases a measurement unit ("kWh", "m3", ...).
func Unit(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
