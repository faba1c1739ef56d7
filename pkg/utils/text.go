package utils

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// SimilarityThreshold is the ratio above which two texts are treated as
// the same content, modulo rephrasing noise from the AI extractor.
const SimilarityThreshold = 0.90

// Normalize lower-cases, trims and collapses internal whitespace runs to
// single spaces. Empty input yields the empty string.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// TextSimilarity returns a character-level similarity ratio in [0,1]
// between the normalized forms of a and b. Two empty strings are
// identical; one empty and one non-empty never match.
func TextSimilarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	return levenshtein.Similarity(na, nb, nil)
}

// Similar reports whether two texts are the same content up to
// SimilarityThreshold.
func Similar(a, b string) bool {
	return TextSimilarity(a, b) >= SimilarityThreshold
}

// NormalizeList drops empty entries, normalizes the rest and sorts the
// result for order-independent set comparison.
func NormalizeList(items []string) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		n := Normalize(item)
		if n == "" {
			continue
		}
		normalized = append(normalized, n)
	}
	sort.Strings(normalized)
	return normalized
}

// Tokenize splits text on whitespace into a set of lower-cased words.
func Tokenize(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	return words
}
