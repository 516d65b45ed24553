package service

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// matchesName reports whether a record name matches a search query.
// Substring and subsequence matches hit first; a Levenshtein check on top
// keeps the search tolerant of minor misspellings.
func matchesName(query, name string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(name)
	if q == "" {
		return false
	}

	if strings.Contains(n, q) {
		return true
	}
	if fuzzy.MatchNormalizedFold(q, n) {
		return true
	}

	threshold := editThreshold(q)
	if fuzzy.LevenshteinDistance(q, n) <= threshold {
		return true
	}
	for _, word := range strings.Fields(n) {
		if fuzzy.LevenshteinDistance(q, word) <= threshold {
			return true
		}
	}
	return false
}

// editThreshold scales typo tolerance with query length: one edit for short
// queries, one more for every five further characters.
func editThreshold(query string) int {
	return 1 + len(query)/5
}
