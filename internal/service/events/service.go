// internal/service/events/service.go

package events

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/service/match"
)

const (
	// defaultLimit is used when a query does not specify one.
	defaultLimit = 8

	// maxQueryKeywords caps the combined keyword list sent to the
	// matcher.
	maxQueryKeywords = 30

	maxSummaryKeywords  = 15
	maxCategoryKeywords = 5
)

// EventSource lists open prediction-market events.
type EventSource interface {
	OpenEvents(ctx context.Context) ([]market.CandidateEvent, error)
}

// Ranker reorders candidate events by semantic relevance to a trend.
// Implementations may return fewer events than given.
type Ranker interface {
	Rank(ctx context.Context, events []market.CandidateEvent, title, summary string, category market.Category, limit int) ([]market.CandidateEvent, error)
}

// Query describes a similar-events lookup for a trend.
type Query struct {
	Category market.Category
	Title    string
	Summary  string
	Limit    int
}

// Result carries the matched events and the strategy that produced them.
type Result struct {
	Events   []market.EventLink
	Strategy match.Strategy
}

// Service finds prediction-market events similar to a trend.
type Service struct {
	source EventSource
	engine *match.Engine
	ranker Ranker
	logger *zap.Logger
}

// NewService creates a similar-events service. The ranker may be nil, in
// which case keyword order is used as-is.
func NewService(source EventSource, engine *match.Engine, ranker Ranker, logger *zap.Logger) *Service {
	if engine == nil {
		engine = match.NewEngine(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		engine: engine,
		ranker: ranker,
		logger: logger,
	}
}

// SimilarEvents resolves events similar to the queried trend. Keywords
// extracted from the title lead, summary keywords follow, category tags
// come last. Ranking failures fall back to keyword order.
func (s *Service) SimilarEvents(ctx context.Context, q Query) (Result, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	keywords := s.buildKeywords(q)
	if len(keywords) == 0 {
		return Result{Strategy: match.StrategyNone}, nil
	}

	pool, err := s.source.OpenEvents(ctx)
	if err != nil {
		return Result{}, err
	}

	// Resolve over-fetches so the ranker has candidates to choose from.
	resolution := s.engine.Resolve(keywords, q.Category, q.Title, pool, limit*2)
	events := resolution.Events

	if s.ranker != nil && q.Title != "" && len(events) > 0 {
		ranked, err := s.ranker.Rank(ctx, events, q.Title, q.Summary, q.Category, limit)
		if err != nil {
			s.logger.Warn("event ranking failed, keeping keyword order", zap.Error(err))
			events = headEvents(events, limit)
		} else if len(ranked) > 0 {
			events = headEvents(ranked, limit)
		} else {
			events = headEvents(events, limit)
		}
	} else {
		events = headEvents(events, limit)
	}

	links := make([]market.EventLink, 0, len(events))
	for _, e := range events {
		links = append(links, e.Link())
	}
	return Result{Events: links, Strategy: resolution.Strategy}, nil
}

// buildKeywords combines title, summary and category keywords, dedupes
// them preserving order, and keeps the most specific ones.
func (s *Service) buildKeywords(q Query) []string {
	var keywords []string

	if q.Title != "" {
		keywords = append(keywords, s.engine.ExtractKeywords(q.Title, q.Category)...)
	}
	if q.Summary != "" {
		summaryKeywords := s.engine.ExtractKeywords(q.Summary, q.Category)
		if len(summaryKeywords) > maxSummaryKeywords {
			summaryKeywords = summaryKeywords[:maxSummaryKeywords]
		}
		keywords = append(keywords, summaryKeywords...)
	}
	if q.Category != market.CategoryUnknown {
		tags := s.engine.Vocabulary().Tags(q.Category)
		if len(tags) == 0 {
			tags = []string{strings.ToLower(string(q.Category))}
		}
		if len(tags) > maxCategoryKeywords {
			tags = tags[:maxCategoryKeywords]
		}
		keywords = append(keywords, tags...)
	}

	seen := make(map[string]struct{}, len(keywords))
	unique := keywords[:0]
	for _, k := range keywords {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		iw := len(strings.Fields(unique[i]))
		jw := len(strings.Fields(unique[j]))
		if iw != jw {
			return iw > jw
		}
		return len(unique[i]) > len(unique[j])
	})

	if len(unique) > maxQueryKeywords {
		unique = unique[:maxQueryKeywords]
	}
	return unique
}

func headEvents(in []market.CandidateEvent, n int) []market.CandidateEvent {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
