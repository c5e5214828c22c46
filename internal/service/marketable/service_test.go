package marketable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitfield/internal/service/predict"
)

type stubNews struct {
	articles map[string][]predict.Article
	queries  []string
	err      error
}

func (s *stubNews) Search(_ context.Context, query string, _ int) ([]predict.Article, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.articles[query], nil
}

func TestScanKeepsOnlyIndicatorRichArticles(t *testing.T) {
	news := &stubNews{
		articles: map[string][]predict.Article{
			"FDA approval OR drug approval OR clinical trial": {
				{
					Title:       "FDA expected to approve new drug by March 2025",
					Description: "The agency will announce its decision before the deadline.",
					URL:         "https://example.com/news/fda-drug",
					SourceName:  "Reuters",
					PublishedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				},
				{
					Title:       "Thoughts on hospital food",
					Description: "A lighthearted look at cafeteria menus.",
					URL:         "https://example.com/news/cafeteria",
					SourceName:  "Blog",
				},
			},
		},
	}

	svc := NewService(news, nil)
	events, err := svc.Scan(context.Background(), []string{"Healthcare"})
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "FDA expected to approve new drug by March 2025", event.Title)
	assert.Equal(t, "Healthcare", event.Category)
	assert.Equal(t, "Regulatory Decision", event.EventType)
	assert.Equal(t, "announce its decision", event.Question)
	assert.True(t, event.Indicators.Regulatory)
	assert.True(t, event.Indicators.Decision)
	assert.GreaterOrEqual(t, event.MarketabilityScore, 60)
}

func TestScanUsesInterestAsQueryWhenUnmapped(t *testing.T) {
	news := &stubNews{articles: map[string][]predict.Article{}}

	svc := NewService(news, nil)
	_, err := svc.Scan(context.Background(), []string{"Space Launches"})
	require.NoError(t, err)
	require.Equal(t, []string{"Space Launches"}, news.queries)
}

func TestScanSortsByMarketabilityScore(t *testing.T) {
	weak := predict.Article{
		Title:       "Company plans product launch in 2025",
		Description: "A release is expected.",
		URL:         "https://example.com/news/launch",
		SourceName:  "Feed",
	}
	strong := predict.Article{
		Title:       "Senate will vote on the bill by June 2025",
		Description: "Legislation faces an approval deadline before the recess.",
		URL:         "https://example.com/news/bill",
		SourceName:  "Reuters",
	}

	news := &stubNews{
		articles: map[string][]predict.Article{
			"bill OR legislation OR regulation": {weak, strong},
		},
	}

	svc := NewService(news, nil)
	events, err := svc.Scan(context.Background(), []string{"Policy"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, strong.Title, events[0].Title)
	assert.Greater(t, events[0].MarketabilityScore, events[1].MarketabilityScore)
}
