// Package strings holds the small text helpers shared by adapters and repos
package strings

import (
	"slices"
	std "strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// FoldEmail trims and lowercases an address so lookups compare equal.
// Lowercasing leaves ß and similar runes alone, unlike full case folding.
// Casers are stateful, so each call builds its own
func FoldEmail(s string) string { return cases.Lower(language.Und).String(std.TrimSpace(s)) }

// EmailDomain returns the part after the last "@". An address without one
// is returned whole
func EmailDomain(email string) string {
	return email[std.LastIndex(email, "@")+1:]
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Dedupe folds, drops blanks and returns the unique values sorted
func Dedupe(in []string, norm func(string) string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if norm != nil {
			s = norm(s)
		}
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
