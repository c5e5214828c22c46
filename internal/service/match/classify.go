package match

import (
	"strings"

	"orbitfield/internal/domain/market"
)

// ClassifiedKeywords partitions a keyword set into trend-specific and
// category-generic subsets. Every input keyword lands in exactly one of
// the two lists.
type ClassifiedKeywords struct {
	TrendKeywords    []string
	CategoryKeywords []string
}

// ClassifyKeywords splits keywords by whether they overlap the
// category's tag vocabulary. Tags like "gaming" are too generic to pin
// an event to a specific trend, so they are weighted far below the
// trend's own words during scoring.
func (e *Engine) ClassifyKeywords(keywords []string, category market.Category) ClassifiedKeywords {
	tags := lowerAll(e.vocab.CategoryTags[category])

	var classified ClassifiedKeywords
	for _, keyword := range keywords {
		keywordLower := strings.ToLower(keyword)
		isCategory := false
		for _, tag := range tags {
			if containsEither(keywordLower, tag) {
				isCategory = true
				break
			}
		}
		if isCategory {
			classified.CategoryKeywords = append(classified.CategoryKeywords, keyword)
		} else {
			classified.TrendKeywords = append(classified.TrendKeywords, keyword)
		}
	}
	return classified
}

// DetectType infers a single "sport:<name>" or "category:<name>" label
// from the expanded keywords, used by the detected-type fallback. For
// Gaming trends sports take priority over the generic categories.
// Returns the empty string when nothing matches and no category was
// given.
func (e *Engine) DetectType(keywords []string, category market.Category) string {
	joined := strings.ToLower(strings.Join(keywords, " "))

	if category == market.CategoryGaming {
		for _, sport := range sportOrder {
			for _, term := range e.vocab.SportTerms[sport] {
				if strings.Contains(joined, term) {
					return "sport:" + sport
				}
			}
		}
	}

	for _, cat := range categoryTermOrder {
		for _, term := range e.vocab.CategoryTerms[cat] {
			if strings.Contains(joined, term) {
				return "category:" + cat
			}
		}
	}

	if category != market.CategoryUnknown {
		return "category:" + strings.ToLower(string(category))
	}

	return ""
}

// Fixed iteration orders keep detection deterministic.
var sportOrder = []string{"soccer", "basketball", "football", "baseball", "hockey", "tennis", "golf"}

var categoryTermOrder = []string{
	"ai", "semiconductors", "finance", "healthcare", "energy",
	"climate", "e-commerce", "policy", "crypto", "gaming",
}
