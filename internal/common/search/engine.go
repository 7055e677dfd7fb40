// Package search implements the fallback fuzzy search used when a list
// read carries a free-text query. It ranks an entire in-memory collection
// by approximate string similarity against a per-entity field list, in the
// spirit of client-side fuzzy matchers: a score of 0 is an exact match, 1
// is no similarity, and results at or below the configured threshold are
// kept, best matches first.
package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the similarity cutoff applied to free-text queries.
const DefaultThreshold = 0.4

// LocationThreshold is the tighter cutoff used for location post-filters.
const LocationThreshold = 0.3

// Fields extracts the searchable field values from an item.
type Fields[T any] func(T) []string

// Rank filters and orders items by fuzzy similarity between the query and
// the item's searchable fields. An item's score is the best (lowest) score
// across its fields; items scoring above threshold are dropped. Ordering is
// score ascending, ties keeping the input order, so equally-ranked items
// stay newest first.
func Rank[T any](items []T, query string, fields Fields[T], threshold float64) []T {
	query = normalize(query)
	if query == "" {
		return items
	}

	type ranked struct {
		item  T
		score float64
		pos   int
	}

	matches := make([]ranked, 0, len(items))
	for i, item := range items {
		best := 1.0
		for _, f := range fields(item) {
			if s := score(query, normalize(f)); s < best {
				best = s
			}
		}
		if best <= threshold {
			matches = append(matches, ranked{item: item, score: best, pos: i})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score < matches[j].score
		}
		return matches[i].pos < matches[j].pos
	})

	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// score computes the similarity distance between the query and one field
// value on a 0-1 scale. Substring containment counts as an exact hit;
// otherwise the field is scanned token-wise and whole, keeping the best
// normalized edit distance.
func score(query, field string) float64 {
	if field == "" {
		return 1
	}
	if strings.Contains(field, query) {
		return 0
	}

	best := normalized(query, field)
	for _, tok := range strings.Fields(field) {
		if s := normalized(query, tok); s < best {
			best = s
		}
	}
	return best
}

// normalized returns the Levenshtein distance between a and b divided by
// the longer length.
func normalized(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

// normalize folds case and trims surrounding whitespace before matching.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
