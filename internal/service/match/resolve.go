package match

import (
	"math"
	"sort"
	"strings"

	"orbitfield/internal/domain/market"
)

// Strategy names which matching tier produced a resolution.
type Strategy string

const (
	// StrategyScored is the strict scored match on trend and category keywords.
	StrategyScored Strategy = "scored"
	// StrategyLenient is the trend-keyword-only partial match, liquidity ranked.
	StrategyLenient Strategy = "lenient"
	// StrategyDetectedType matches a dedicated term list for a detected sport or category.
	StrategyDetectedType Strategy = "detected-type"
	// StrategyCategory is the pure category-tag match, only reachable
	// when the trend produced no trend-specific keywords at all.
	StrategyCategory Strategy = "category"
	// StrategyNone means every tier came up empty.
	StrategyNone Strategy = "none"
)

// Resolution is the outcome of running the fallback chain.
type Resolution struct {
	Strategy Strategy
	Events   []market.CandidateEvent
}

// Resolve runs the matching tiers against the candidate pool, most
// strict first, and returns the first tier that produced results. An
// empty pool or a fully exhausted chain yields an empty resolution,
// never an error.
func (e *Engine) Resolve(
	rawKeywords []string,
	category market.Category,
	originalTitle string,
	pool []market.CandidateEvent,
	limit int,
) Resolution {
	expanded := e.ExpandKeywords(rawKeywords, category)
	classified := e.ClassifyKeywords(expanded, category)
	exclusions := e.vocab.Exclusions(category)

	scored := e.ScoreEvents(pool, classified, category, exclusions)
	if len(scored) > 0 {
		events := make([]market.CandidateEvent, 0, limit)
		for _, s := range scored {
			if len(events) == limit {
				break
			}
			events = append(events, s.Event)
		}
		return Resolution{Strategy: StrategyScored, Events: events}
	}

	trendKeywords := lowerAll(classified.TrendKeywords)

	if len(trendKeywords) > 0 {
		if events := e.lenientMatch(trendKeywords, category, exclusions, pool, limit); len(events) > 0 {
			return Resolution{Strategy: StrategyLenient, Events: events}
		}
		if events := e.detectedTypeMatch(expanded, category, exclusions, pool, limit); len(events) > 0 {
			return Resolution{Strategy: StrategyDetectedType, Events: events}
		}
		// With trend keywords present and nothing matched, an empty
		// result beats surfacing unrelated category events.
		return Resolution{Strategy: StrategyNone}
	}

	if category != market.CategoryUnknown {
		if events := e.categoryMatch(category, originalTitle, exclusions, pool, limit); len(events) > 0 {
			return Resolution{Strategy: StrategyCategory, Events: events}
		}
	}

	return Resolution{Strategy: StrategyNone}
}

// lenientMatch accepts any event where at least one trend keyword
// matches, counting partial multi-word hits, ranked by liquidity. Tags
// are not consulted here.
func (e *Engine) lenientMatch(
	trendKeywordsLower []string,
	category market.Category,
	exclusions []string,
	pool []market.CandidateEvent,
	limit int,
) []market.CandidateEvent {
	exclusionsLower := lowerAll(exclusions)
	matcher := NewWordMatcher()

	var matched []market.CandidateEvent
	for _, event := range pool {
		text := eventText(event, false)

		if isExcluded(text, category, exclusionsLower) {
			continue
		}
		if category == market.CategoryGaming && e.gamingConflict(trendKeywordsLower, text) {
			continue
		}

		if anyLenientMatch(matcher, text, trendKeywordsLower) {
			matched = append(matched, event)
		}
	}

	return topByLiquidity(matched, limit)
}

// anyLenientMatch reports whether any keyword hits the text, using the
// loosest rules: exact substring, whole word, or enough of a phrase's
// words appearing anywhere.
func anyLenientMatch(matcher *WordMatcher, text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}

		words := strings.Fields(keyword)
		if len(words) > 1 {
			found := 0
			for _, word := range words {
				if matcher.Matches(text, word) || strings.Contains(text, word) {
					found++
				}
			}
			if found >= phraseMatchThreshold(len(words)) {
				return true
			}
		} else if matcher.Matches(text, keyword) {
			return true
		}
	}
	return false
}

// phraseMatchThreshold is the number of a phrase's words that must
// appear for a lenient hit: both words of a bigram, two thirds rounded
// up otherwise.
func phraseMatchThreshold(wordCount int) int {
	if wordCount == 2 {
		return 2
	}
	return int(math.Ceil(float64(wordCount) * 0.67))
}

// detectedTypeMatch infers a sport or category from the expanded
// keywords and filters the pool against that type's dedicated term
// list.
func (e *Engine) detectedTypeMatch(
	expandedKeywords []string,
	category market.Category,
	exclusions []string,
	pool []market.CandidateEvent,
	limit int,
) []market.CandidateEvent {
	detected := e.DetectType(expandedKeywords, category)
	if detected == "" {
		return nil
	}

	kind, value, ok := strings.Cut(detected, ":")
	if !ok {
		return nil
	}

	var terms []string
	switch kind {
	case "sport":
		terms = e.vocab.SportTerms[value]
	case "category":
		terms = e.vocab.CategoryTerms[value]
		if len(terms) == 0 {
			terms = e.vocab.CategoryTags[category]
		}
	}
	if len(terms) == 0 {
		return nil
	}

	exclusionsLower := lowerAll(exclusions)

	var matched []market.CandidateEvent
	for _, event := range pool {
		text := eventText(event, true)

		// No trading carve-out at this tier.
		if anySubstring(text, exclusionsLower) {
			continue
		}

		if category == market.CategoryGaming && kind == "sport" &&
			anyMarkerInText(text, e.vocab.EsportsMarkers) {
			continue
		}

		if anyTermMatch(text, terms) {
			matched = append(matched, event)
		}
	}

	return topByLiquidity(matched, limit)
}

// anyTermMatch checks terms with plain substring matching, letting
// multi-word terms pass on a partial word hit.
func anyTermMatch(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
		words := strings.Fields(term)
		if len(words) > 1 {
			found := 0
			for _, word := range words {
				if strings.Contains(text, word) {
					found++
				}
			}
			if found >= phraseMatchThreshold(len(words)) {
				return true
			}
		}
	}
	return false
}

// categoryMatch filters the pool on the category tag list alone. For
// Gaming trends whose original title names a sport, esports events are
// still vetoed.
func (e *Engine) categoryMatch(
	category market.Category,
	originalTitle string,
	exclusions []string,
	pool []market.CandidateEvent,
	limit int,
) []market.CandidateEvent {
	tags := lowerAll(e.vocab.CategoryTags[category])
	if len(tags) == 0 {
		tags = []string{strings.ToLower(string(category))}
	}
	exclusionsLower := lowerAll(exclusions)
	matcher := NewWordMatcher()

	titleIsSports := false
	if category == market.CategoryGaming && originalTitle != "" {
		titleIsSports = anyMarkerInText(strings.ToLower(originalTitle), e.vocab.SportsMarkers)
	}

	var matched []market.CandidateEvent
	for _, event := range pool {
		text := eventText(event, false)

		if anySubstring(text, exclusionsLower) {
			continue
		}
		if titleIsSports && anyMarkerInText(text, e.vocab.EsportsMarkers) {
			continue
		}

		hit := false
		for _, tag := range tags {
			if strings.Contains(tag, " ") {
				if strings.Contains(text, tag) {
					hit = true
					break
				}
			} else if matcher.Matches(text, tag) {
				hit = true
				break
			}
		}
		if hit {
			matched = append(matched, event)
		}
	}

	return topByLiquidity(matched, limit)
}

func anySubstring(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func topByLiquidity(events []market.CandidateEvent, limit int) []market.CandidateEvent {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Liquidity > events[j].Liquidity
	})
	if len(events) > limit {
		return events[:limit]
	}
	return events
}
