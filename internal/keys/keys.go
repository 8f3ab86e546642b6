package keys

import (
	"strings"
)

// Normalize canonicalizes a single species or ability identifier: trimmed,
// lower-cased, spaces replaced with underscores. Catalog lookups and DB keys
// both go through this so config casing never matters.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
