package match

import (
	"sort"
	"strings"

	"orbitfield/internal/domain/market"
)

// Scoring weights. Trend-specific keywords dominate category keywords
// by an order of magnitude so a generic tag match can never outrank a
// real trend match.
const (
	scoreTrendPhrase4Plus  = 20
	scoreTrendTrigram      = 15
	scoreTrendBigram       = 10
	scoreTrendPartial3     = 8
	scoreTrendPartialOther = 5
	scoreTrendSingleWord   = 5
	scoreTrendSubstring    = 2

	titleBonusPhrase = 5
	titleBonusSingle = 3

	scoreCategoryTrigram = 2
	scoreCategoryBigram  = 1
	scoreCategorySingle  = 0.5

	bonusManyTrendMatches = 10
	bonusTwoTrendMatches  = 5
	bonusMixedMatches     = 3

	liquidityBonusThreshold = 10000
	volumeBonusThreshold    = 50000
	liquidityBonus          = 2
	volumeBonus             = 1

	// Minimum trend-keyword count before a category-only match is
	// treated as evidence of irrelevance rather than sparse vocabulary.
	relevanceGateMinKeywords = 3
)

// ScoreEvents scores every event in the pool against the classified
// keywords and returns the survivors ranked best-first. Events hitting
// an exclusion keyword, failing the relevance gate, violating the
// Gaming sport/esport split or matching nothing at all are dropped.
func (e *Engine) ScoreEvents(
	events []market.CandidateEvent,
	classified ClassifiedKeywords,
	category market.Category,
	exclusions []string,
) []market.ScoredEvent {
	trendKeywords := sortBySpecificity(lowerAll(classified.TrendKeywords))
	categoryKeywords := sortBySpecificity(lowerAll(classified.CategoryKeywords))
	exclusionsLower := lowerAll(exclusions)
	matcher := NewWordMatcher()

	var scored []market.ScoredEvent
	for _, event := range events {
		titleLower := strings.ToLower(event.Title)
		text := eventText(event, true)

		if isExcluded(text, category, exclusionsLower) {
			continue
		}

		var score float64
		trendMatches := 0
		for _, keyword := range trendKeywords {
			points, matched := scoreTrendKeyword(matcher, text, keyword)
			if !matched {
				continue
			}
			score += points
			trendMatches++
			if strings.Contains(titleLower, keyword) {
				if strings.Contains(keyword, " ") {
					score += titleBonusPhrase
				} else {
					score += titleBonusSingle
				}
			}
		}

		categoryMatches := 0
		for _, keyword := range categoryKeywords {
			points, matched := scoreCategoryKeyword(matcher, text, keyword)
			if !matched {
				continue
			}
			score += points
			categoryMatches++
		}

		// An event matching only generic category tags is not about this
		// trend when there was enough trend vocabulary to expect a hit.
		if len(trendKeywords) >= relevanceGateMinKeywords &&
			trendMatches == 0 && categoryMatches > 0 {
			continue
		}

		if category == market.CategoryGaming && e.gamingConflict(trendKeywords, text) {
			continue
		}

		matchCount := trendMatches + categoryMatches
		if matchCount == 0 {
			continue
		}

		switch {
		case trendMatches >= 3:
			score += bonusManyTrendMatches
		case trendMatches == 2:
			score += bonusTwoTrendMatches
		case trendMatches == 1 && matchCount >= 3:
			score += bonusMixedMatches
		}

		if event.Liquidity > liquidityBonusThreshold {
			score += liquidityBonus
		}
		if event.Volume > volumeBonusThreshold {
			score += volumeBonus
		}

		scored = append(scored, market.ScoredEvent{
			Event:      event,
			Score:      score,
			MatchCount: matchCount,
		})
	}

	rankScored(scored)
	return scored
}

// scoreTrendKeyword scores one trend keyword against the event text.
// Exact phrase hits score highest, then all-words-present partial
// phrases, then whole single words, then raw substrings.
func scoreTrendKeyword(matcher *WordMatcher, text, keyword string) (float64, bool) {
	if strings.Contains(keyword, " ") {
		words := strings.Fields(keyword)
		if strings.Contains(text, keyword) {
			switch {
			case len(words) >= 4:
				return scoreTrendPhrase4Plus, true
			case len(words) == 3:
				return scoreTrendTrigram, true
			default:
				return scoreTrendBigram, true
			}
		}
		allPresent := true
		for _, word := range words {
			if !matcher.Matches(text, word) {
				allPresent = false
				break
			}
		}
		if allPresent {
			if len(words) == 3 {
				return scoreTrendPartial3, true
			}
			return scoreTrendPartialOther, true
		}
		return 0, false
	}

	if matcher.Matches(text, keyword) {
		return scoreTrendSingleWord, true
	}
	if strings.Contains(text, keyword) {
		return scoreTrendSubstring, true
	}
	return 0, false
}

func scoreCategoryKeyword(matcher *WordMatcher, text, keyword string) (float64, bool) {
	if strings.Contains(keyword, " ") {
		if !strings.Contains(text, keyword) {
			return 0, false
		}
		if len(strings.Fields(keyword)) == 3 {
			return scoreCategoryTrigram, true
		}
		return scoreCategoryBigram, true
	}
	if matcher.Matches(text, keyword) {
		return scoreCategorySingle, true
	}
	return 0, false
}

// isExcluded checks the category's exclusion keywords against the
// event text. For Gaming the "trading" exclusion only fires together
// with "crypto", so in-game trading markets survive.
func isExcluded(text string, category market.Category, exclusionsLower []string) bool {
	for _, exclusion := range exclusionsLower {
		if category == market.CategoryGaming && exclusion == "trading" {
			if strings.Contains(text, "crypto") && strings.Contains(text, "trading") {
				return true
			}
			continue
		}
		if strings.Contains(text, exclusion) {
			return true
		}
	}
	return false
}

// gamingConflict reports whether a Gaming event sits on the wrong side
// of the sport-vs-esport split for this trend's keywords.
func (e *Engine) gamingConflict(trendKeywordsLower []string, text string) bool {
	trendIsSports := markersOverlap(trendKeywordsLower, e.vocab.SportsMarkers)
	trendIsEsports := markersOverlap(trendKeywordsLower, e.vocab.EsportsMarkers)

	eventIsSports := anyMarkerInText(text, e.vocab.SportsMarkers)
	eventIsEsports := anyMarkerInText(text, e.vocab.EsportsMarkers)

	if trendIsSports && eventIsEsports {
		return true
	}
	if trendIsEsports && eventIsSports {
		return true
	}
	return false
}

func markersOverlap(keywords, markers []string) bool {
	for _, k := range keywords {
		for _, m := range markers {
			if containsEither(k, m) {
				return true
			}
		}
	}
	return false
}

func anyMarkerInText(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// rankScored orders by score, then match count, then liquidity, all
// descending.
func rankScored(scored []market.ScoredEvent) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].MatchCount != scored[j].MatchCount {
			return scored[i].MatchCount > scored[j].MatchCount
		}
		return scored[i].Event.Liquidity > scored[j].Event.Liquidity
	})
}
