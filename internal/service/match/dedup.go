package match

import (
	"strings"
)

// Fuzzy title deduplication: two titles are duplicates when their
// significant-word overlap exceeds the threshold, or when one contains
// the other and their lengths are close.
const (
	duplicateOverlapThreshold = 0.7
	duplicateLengthSlack      = 10
	significantWordLen        = 3
)

// NormalizeTitle lowercases a title, strips punctuation and collapses
// whitespace, for comparison.
func NormalizeTitle(title string) string {
	cleaned := punctRe.ReplaceAllString(strings.ToLower(title), "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// TitlesSimilar reports whether two normalized titles describe the same
// thing.
func TitlesSimilar(a, b string) bool {
	aWords := wordSet(a)
	bWords := wordSet(b)

	overlap := 0
	for w := range aWords {
		if _, ok := bWords[w]; ok {
			overlap++
		}
	}
	union := len(aWords)
	for w := range bWords {
		if _, ok := aWords[w]; !ok {
			union++
		}
	}
	if union > 0 && float64(overlap)/float64(union) > duplicateOverlapThreshold {
		return true
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		diff := len(a) - len(b)
		if diff < 0 {
			diff = -diff
		}
		if diff < duplicateLengthSlack {
			return true
		}
	}

	return false
}

func wordSet(title string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(title) {
		if len(w) > significantWordLen {
			set[w] = struct{}{}
		}
	}
	return set
}

// DeduplicateTitles walks items in order and keeps the first of every
// group of similar titles. The titleOf callback supplies each item's
// title; the returned slice holds the indices of the survivors.
func DeduplicateTitles(n int, titleOf func(int) string) []int {
	var kept []int
	var seen []string

	for i := 0; i < n; i++ {
		normalized := NormalizeTitle(titleOf(i))

		duplicate := false
		for _, s := range seen {
			if s == normalized || TitlesSimilar(normalized, s) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		seen = append(seen, normalized)
		kept = append(kept, i)
	}

	return kept
}
