package match

import (
	"regexp"
	"sort"
	"strings"

	"orbitfield/internal/domain/market"
)

// Engine performs keyword extraction, expansion, classification and
// event scoring. It holds only the read-only vocabulary, so all methods
// are safe for concurrent use.
type Engine struct {
	vocab *Vocabulary
}

// NewEngine creates an engine over the given vocabulary. A nil
// vocabulary uses the defaults.
func NewEngine(vocab *Vocabulary) *Engine {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Engine{vocab: vocab}
}

// Vocabulary returns the engine's vocabulary.
func (e *Engine) Vocabulary() *Vocabulary {
	return e.vocab
}

// WordMatcher memoizes compiled whole-word patterns so one request's
// keyword set is compiled once, not once per event in the pool. Not
// safe for concurrent use; build one per scan.
type WordMatcher struct {
	patterns map[string]*regexp.Regexp
}

// NewWordMatcher creates an empty matcher.
func NewWordMatcher() *WordMatcher {
	return &WordMatcher{patterns: make(map[string]*regexp.Regexp)}
}

// Matches reports whether keyword appears in text on a word boundary,
// case-insensitively. Regex metacharacters in the keyword are escaped.
func (m *WordMatcher) Matches(text, keyword string) bool {
	re, ok := m.patterns[keyword]
	if !ok {
		re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		m.patterns[keyword] = re
	}
	return re.MatchString(text)
}

// eventText builds the lowercase search text for an event. Tags are
// included only when withTags is set; the lenient and pure-category
// fallbacks match on title and description alone.
func eventText(e market.CandidateEvent, withTags bool) string {
	parts := []string{strings.ToLower(e.Title), strings.ToLower(e.Description)}
	if withTags {
		tags := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			tags = append(tags, strings.ToLower(t))
		}
		parts = append(parts, strings.Join(tags, " "))
	}
	return strings.Join(parts, " ")
}

// sortBySpecificity orders keywords by word count descending, then by
// length descending, so the most specific phrases are tried first.
func sortBySpecificity(keywords []string) []string {
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.SliceStable(sorted, func(i, j int) bool {
		iw := len(strings.Fields(sorted[i]))
		jw := len(strings.Fields(sorted[j]))
		if iw != jw {
			return iw > jw
		}
		return len(sorted[i]) > len(sorted[j])
	})
	return sorted
}

func lowerAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = strings.ToLower(k)
	}
	return out
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
