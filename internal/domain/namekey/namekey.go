// Package namekey canonicalizes skater names from the two source formats
// into one comparable join key.
//
// The key is a lowercase, whitespace-collapsed string in "first... last"
// order. Both normalizers are pure and deterministic; empty input yields
// an empty key.
package namekey

import "strings"

// Normalize canonicalizes a results-dataset name ("First Last" order):
// lowercase, collapse internal whitespace, trim. No reordering.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// FromSurnameFirst canonicalizes a profile-dataset name ("LAST First..."
// order). The first token is treated as the entire family name and every
// remaining token as the given name, emitted as "given family" lowercased.
// This is a fixed positional rule: letter case is never inspected, and
// multi-word family names are split incorrectly on purpose to stay
// consistent with the figures computed against this behavior.
// Single-token names pass through lowercased.
func FromSurnameFirst(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return strings.ToLower(strings.Join(parts, " "))
	}
	given := strings.Join(parts[1:], " ")
	return strings.ToLower(given + " " + parts[0])
}
