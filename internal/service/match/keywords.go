package match

import (
	"regexp"
	"strings"

	"orbitfield/internal/domain/market"
)

// Caps applied while assembling a keyword set. Entities are the most
// discriminative so they get the largest share.
const (
	maxEntityKeywords = 20
	maxTrigrams       = 5
	maxBigrams        = 10
	maxSingleWords    = 15
	maxKeywords       = 25
)

var (
	properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	punctRe      = regexp.MustCompile(`[^\w\s]`)
	allDigitsRe  = regexp.MustCompile(`^\d+$`)
)

// ExtractEntities scans text for known per-category entities and for
// capitalized proper-noun sequences. Multi-word entities match as exact
// substrings, single-word entities only on word boundaries.
func (e *Engine) ExtractEntities(text string, category market.Category) []string {
	if text == "" {
		return nil
	}

	var entities []string
	textLower := strings.ToLower(text)
	matcher := NewWordMatcher()

	for _, m := range properNounRe.FindAllString(text, -1) {
		entities = append(entities, strings.ToLower(m))
	}

	for _, entity := range e.vocab.KnownEntities[category] {
		if strings.Contains(entity, " ") {
			if strings.Contains(textLower, entity) {
				entities = append(entities, entity)
			}
		} else if matcher.Matches(text, entity) {
			entities = append(entities, entity)
		}
	}

	return entities
}

// ExtractKeywords builds a prioritized keyword set from free text:
// known entities first, then proper nouns, then entity-anchored bigrams
// and trigrams, then remaining significant single words. The result is
// deduplicated, sorted most-specific-first and capped.
func (e *Engine) ExtractKeywords(text string, category market.Category) []string {
	if text == "" {
		return nil
	}

	var keywords []string

	entities := e.ExtractEntities(text, category)
	if len(entities) > maxEntityKeywords {
		keywords = append(keywords, entities[:maxEntityKeywords]...)
	} else {
		keywords = append(keywords, entities...)
	}

	properNouns := properNounRe.FindAllString(text, -1)
	for _, m := range properNouns {
		mLower := strings.ToLower(m)
		if len(m) > 2 && !containsString(keywords, mLower) {
			keywords = append(keywords, mLower)
			if strings.Contains(m, " ") {
				for _, word := range strings.Fields(m) {
					wordLower := strings.ToLower(word)
					if len(word) > 2 && !isStopWord(e.vocab, wordLower) && !containsString(keywords, wordLower) {
						keywords = append(keywords, wordLower)
					}
				}
			}
		}
	}

	words := significantWords(e.vocab, text)

	var bigrams []string
	for i := 0; i+1 < len(words); i++ {
		bigram := words[i] + " " + words[i+1]
		if containsString(keywords, bigram) {
			continue
		}
		anchored := anchoredByEntity(entities, words[i]) ||
			anchoredByEntity(entities, words[i+1]) ||
			overlapsProperNoun(properNouns, bigram)
		if anchored {
			bigrams = append(bigrams, bigram)
		}
	}

	var trigrams []string
	for i := 0; i+2 < len(words); i++ {
		trigram := words[i] + " " + words[i+1] + " " + words[i+2]
		if containsString(keywords, trigram) {
			continue
		}
		if properNounInPhrase(properNouns, trigram) || multiWordEntityInPhrase(entities, trigram) {
			trigrams = append(trigrams, trigram)
		}
	}

	var singles []string
	for _, word := range words {
		if !containsString(keywords, word) {
			singles = append(singles, word)
		}
	}

	keywords = append(keywords, capSlice(trigrams, maxTrigrams)...)
	keywords = append(keywords, capSlice(bigrams, maxBigrams)...)
	keywords = append(keywords, capSlice(singles, maxSingleWords)...)

	unique := dedupeStrings(keywords)
	sorted := sortBySpecificity(unique)
	return capSlice(sorted, maxKeywords)
}

// significantWords lowercases text, strips punctuation and drops stop
// words, short words and bare numbers.
func significantWords(v *Vocabulary, text string) []string {
	cleaned := punctRe.ReplaceAllString(strings.ToLower(text), " ")
	var out []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) > 2 && !isStopWord(v, word) && !allDigitsRe.MatchString(word) {
			out = append(out, word)
		}
	}
	return out
}

func isStopWord(v *Vocabulary, word string) bool {
	_, ok := v.StopWords[word]
	return ok
}

func anchoredByEntity(entities []string, word string) bool {
	for _, e := range entities {
		if containsEither(e, word) {
			return true
		}
	}
	return false
}

func overlapsProperNoun(properNouns []string, phrase string) bool {
	for _, pn := range properNouns {
		if containsEither(strings.ToLower(pn), phrase) {
			return true
		}
	}
	return false
}

// properNounInPhrase reports whether any proper noun, or any word of a
// proper noun, appears inside the phrase.
func properNounInPhrase(properNouns []string, phrase string) bool {
	for _, pn := range properNouns {
		pnLower := strings.ToLower(pn)
		if strings.Contains(phrase, pnLower) {
			return true
		}
		for _, word := range strings.Fields(pnLower) {
			if strings.Contains(phrase, word) {
				return true
			}
		}
	}
	return false
}

func multiWordEntityInPhrase(entities []string, phrase string) bool {
	for _, e := range entities {
		if strings.Contains(e, " ") && strings.Contains(phrase, e) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func capSlice(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func dedupeStrings(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
