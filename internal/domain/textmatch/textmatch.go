// Package textmatch scores textual similarity between two competition-name
// strings.
//
// The score is a term-overlap ratio, not an edit distance: cheap, tolerant
// of punctuation and word order, and deliberately willing to produce false
// positives between loosely related names that share common words.
package textmatch

import "strings"

// minTermLength drops short filler tokens before comparing term sets.
const minTermLength = 2

// Similarity returns a score in [0,1] for two competition names.
// Empty input scores 0; after normalization, identical strings score 1;
// otherwise the score is the shared-term count over the larger term set.
// Symmetric and reflexive for non-empty input.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	na := normalize(a)
	nb := normalize(b)
	if na == nb && na != "" {
		return 1.0
	}

	termsA := termSet(na)
	termsB := termSet(nb)
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0
	}

	overlap := 0
	for term := range termsA {
		if _, ok := termsB[term]; ok {
			overlap++
		}
	}

	larger := len(termsA)
	if len(termsB) > larger {
		larger = len(termsB)
	}
	return float64(overlap) / float64(larger)
}

// normalize lowercases, strips non-alphanumeric characters and collapses
// whitespace.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// termSet tokenizes a normalized string, ignoring tokens of length <= 2.
func termSet(s string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		if len(tok) <= minTermLength {
			continue
		}
		terms[tok] = struct{}{}
	}
	return terms
}
