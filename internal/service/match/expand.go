package match

import (
	"sort"
	"strings"

	"orbitfield/internal/domain/market"
)

// ExpandKeywords grows a keyword set with synonyms and related terms
// from the sports and general tables, plus the gaming table when the
// category is Gaming. Both exact table hits and substring overlaps in
// either direction trigger an expansion. The result keeps the input
// order and is deduplicated.
func (e *Engine) ExpandKeywords(keywords []string, category market.Category) []string {
	expanded := make([]string, 0, len(keywords))
	expanded = append(expanded, keywords...)

	tables := []map[string][]string{e.vocab.SportsExpansions, e.vocab.GeneralExpansions}
	if category == market.CategoryGaming {
		tables = append(tables, e.vocab.GamingExpansions)
	}

	for _, keyword := range keywords {
		keywordLower := strings.ToLower(keyword)

		for _, table := range tables {
			if synonyms, ok := table[keywordLower]; ok {
				expanded = append(expanded, synonyms...)
			}
			// Iterate keys in sorted order so expansion is deterministic.
			for _, key := range sortedKeys(table) {
				if containsEither(keywordLower, key) {
					expanded = append(expanded, table[key]...)
				}
			}
		}
	}

	return dedupeStrings(expanded)
}

func sortedKeys(table map[string][]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
