// Package domain provides the data model shared across the query/caching layer.
package domain

import "strings"

// SearchTerm is a canonicalized string used as the cache key for a lookup.
// Always construct one through Normalize so equivalent queries collide
// deterministically.
type SearchTerm string

// Normalize canonicalizes a raw query string into a SearchTerm: leading and
// trailing whitespace is trimmed, the term is case-folded, and runs of inner
// whitespace collapse to a single space.
func Normalize(raw string) SearchTerm {
	fields := strings.Fields(strings.ToLower(raw))
	return SearchTerm(strings.Join(fields, " "))
}

// String returns the term as a plain string.
func (t SearchTerm) String() string {
	return string(t)
}
