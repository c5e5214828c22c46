// internal/service/marketable/service.go

// Package marketable scans recent news for events concrete enough to
// become prediction markets.
package marketable

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"orbitfield/internal/service/match"
	"orbitfield/internal/service/predict"
)

const (
	maxEvents        = 20
	searchKeywords   = 3
	articlesPerQuery = 20
)

// searchTerms maps an interest to news queries likely to surface
// decision-shaped events for it. Unknown interests search as-is.
var searchTerms = map[string][]string{
	"AI":             {"AI regulation", "AI approval", "GPT launch", "AI policy", "AI legislation"},
	"Policy":         {"bill", "legislation", "regulation", "vote", "approval", "policy decision"},
	"Semiconductors": {"chip approval", "semiconductor regulation", "TSMC", "Intel", "NVIDIA"},
	"Finance":        {"IPO", "merger", "acquisition", "earnings", "SEC approval", "Fed decision"},
	"E-commerce":     {"launch", "IPO", "merger", "acquisition"},
	"Healthcare":     {"FDA approval", "drug approval", "clinical trial", "medical device"},
	"Energy":         {"energy policy", "renewable energy", "regulation", "approval"},
	"Crypto":         {"crypto regulation", "bitcoin ETF", "approval", "SEC decision"},
	"Climate":        {"climate policy", "carbon regulation", "climate bill", "approval"},
	"Gaming":         {"game launch", "console release", "acquisition", "merger"},
}

// Event is a news item that qualifies as a prospective market.
type Event struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	URL                string           `json:"url"`
	Source             string           `json:"source"`
	PublishedAt        time.Time        `json:"publishedAt"`
	Category           string           `json:"category"`
	EventType          string           `json:"eventType"`
	Deadline           string           `json:"deadline,omitempty"`
	Question           string           `json:"question,omitempty"`
	Indicators         match.Indicators `json:"indicators"`
	MarketabilityScore int              `json:"marketabilityScore"`
}

// Service finds marketable events in recent news.
type Service struct {
	news   predict.NewsSource
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a marketable event scanner.
func NewService(news predict.NewsSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		news:   news,
		logger: logger,
		now:    time.Now,
	}
}

// Scan searches news for each interest, keeps articles with at least
// two marketability indicator groups, and returns the strongest
// candidates ordered by marketability score.
func (s *Service) Scan(ctx context.Context, interests []string) ([]Event, error) {
	var all []Event

	for _, interest := range interests {
		terms, ok := searchTerms[interest]
		if !ok {
			terms = []string{interest}
		}
		if len(terms) > searchKeywords {
			terms = terms[:searchKeywords]
		}
		query := strings.Join(terms, " OR ")

		articles, err := s.news.Search(ctx, query, articlesPerQuery)
		if err != nil {
			s.logger.Warn("news search failed",
				zap.String("interest", interest),
				zap.Error(err))
			continue
		}

		for _, article := range articles {
			if event, ok := s.classify(article, interest); ok {
				all = append(all, event)
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].MarketabilityScore > all[j].MarketabilityScore
	})

	if len(all) > maxEvents {
		all = all[:maxEvents]
	}

	return all, nil
}

// classify decides whether an article is a marketable event candidate.
func (s *Service) classify(article predict.Article, interest string) (Event, bool) {
	text := strings.ToLower(article.Title + " " + article.Description + " " + article.Content)

	indicators := match.DetectIndicators(text)
	score := match.MarketabilityScore(indicators)
	if score == 0 {
		return Event{}, false
	}

	details := match.ExtractEventDetails(article.Description, article.Title)

	return Event{
		ID:                 fmt.Sprintf("marketable-%s-%d", urlSlug(article.URL), s.now().UnixMilli()),
		Title:              article.Title,
		Description:        article.Description,
		URL:                article.URL,
		Source:             article.SourceName,
		PublishedAt:        article.PublishedAt,
		Category:           interest,
		EventType:          match.IndicatorEventType(indicators),
		Deadline:           details.Deadline,
		Question:           match.ExtractQuestion(article.Title, article.Description),
		Indicators:         indicators,
		MarketabilityScore: score,
	}, true
}

func urlSlug(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
