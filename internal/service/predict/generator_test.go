package predict

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/domain/trend"
)

type stubNews struct {
	articles []Article
}

func (s *stubNews) Search(ctx context.Context, query string, pageSize int) ([]Article, error) {
	return s.articles, nil
}

type stubReddit struct {
	posts []RedditPost
}

func (s *stubReddit) SearchHot(ctx context.Context, subreddits []string, query string, limit int) ([]RedditPost, error) {
	return s.posts, nil
}

type stubTwitter struct {
	tweets []Tweet
}

func (s *stubTwitter) SearchRecent(ctx context.Context, query string, maxResults int) ([]Tweet, error) {
	return s.tweets, nil
}

type stubMarkets struct {
	events []market.CandidateEvent
}

func (s *stubMarkets) OpenEvents(ctx context.Context) ([]market.CandidateEvent, error) {
	return s.events, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestGenerateSkipsUnknownInterests(t *testing.T) {
	g := NewGenerator(nil, nil, nil, nil, nil, nil)

	trends, err := g.Generate(context.Background(), []string{"Astrology", ""})
	require.NoError(t, err)
	assert.Empty(t, trends)
}

func TestMarketTrendsFilterAndProbability(t *testing.T) {
	markets := &stubMarkets{events: []market.CandidateEvent{
		{
			ID:        "1",
			Slug:      "ai-bar-exam",
			Title:     "Will AI pass the bar exam?",
			Liquidity: 10000,
			Volume:    100000,
		},
		{
			ID:    "2",
			Title: "Bitcoin AI trading up or down this week",
		},
		{
			ID:    "3",
			Title: "Next hurricane landfall in Florida",
		},
	}}

	g := NewGenerator(nil, nil, nil, markets, nil, nil)
	g.now = fixedNow

	trends, err := g.Generate(context.Background(), []string{"AI"})
	require.NoError(t, err)
	require.Len(t, trends, 1)

	got := trends[0]
	assert.Equal(t, "Will AI pass the bar exam?", got.Title)
	assert.Equal(t, trend.SourcePolymarket, got.Source)
	assert.Equal(t, market.CategoryAI, got.Category)
	assert.Equal(t, "https://polymarket.com/event/ai-bar-exam", got.URL)

	// liquidity 10000 maps to 65, volume 100000 adds 1
	assert.Equal(t, 66, got.Probability)

	require.Len(t, got.Events, 1)
	assert.Equal(t, "https://polymarket.com/event/ai-bar-exam", got.Events[0].URL)
}

func TestRedditTrendsKeepOnlyMarketable(t *testing.T) {
	created := fixedNow().Add(-2 * time.Hour)
	reddit := &stubReddit{posts: []RedditPost{
		{
			ID:        "a",
			Title:     "FDA will approve the new treatment by March 2025",
			Subreddit: "healthcare",
			Permalink: "/r/healthcare/comments/a",
			Score:     1500,
			Comments:  120,
			CreatedAt: created,
		},
		{
			ID:        "b",
			Title:     "What do you think about the new hospital design?",
			Subreddit: "healthcare",
			Permalink: "/r/healthcare/comments/b",
			Score:     5000,
			CreatedAt: created,
		},
	}}

	g := NewGenerator(nil, reddit, nil, nil, nil, nil)
	g.now = fixedNow

	trends, err := g.Generate(context.Background(), []string{"Healthcare"})
	require.NoError(t, err)
	require.Len(t, trends, 1)

	got := trends[0]
	assert.Equal(t, trend.SourceReddit, got.Source)
	assert.True(t, got.Marketable)
	assert.True(t, strings.HasPrefix(got.Title, "Will "))
	assert.Equal(t, "Regulatory Decision", got.EventType)
	assert.Equal(t, "march 2025", got.Deadline)
	assert.Equal(t, "https://reddit.com/r/healthcare/comments/a", got.URL)
	assert.Equal(t, 1620, got.Engagement)

	// base 30, score 1500 adds 15, comments 120 add 8, 2h old adds 8,
	// marketable adds 8, total 69
	assert.Equal(t, 69, got.Probability)
}

func TestTwitterTrendsRequireTemplateKeyword(t *testing.T) {
	created := fixedNow().Add(-30 * time.Hour)
	twitter := &stubTwitter{tweets: []Tweet{
		{
			ID:        "1",
			Text:      "SEC will approve new AI disclosure rules by January 2026",
			Author:    "marketdesk",
			Likes:     600,
			CreatedAt: created,
		},
		{
			ID:        "2",
			Text:      "Congress will vote on the farm subsidy bill by next year",
			Author:    "aggwatch",
			Likes:     900,
			CreatedAt: created,
		},
	}}

	g := NewGenerator(nil, nil, twitter, nil, nil, nil)
	g.now = fixedNow

	trends, err := g.Generate(context.Background(), []string{"AI"})
	require.NoError(t, err)
	require.Len(t, trends, 1)

	got := trends[0]
	assert.Equal(t, trend.SourceTwitter, got.Source)
	assert.Equal(t, "https://twitter.com/marketdesk/status/1", got.URL)
	assert.Equal(t, 600, got.Engagement)

	// base 30, engagement 600 adds 12, marketable adds 8, total 50
	assert.Equal(t, 50, got.Probability)
}

func TestNewsTrendsGroupedPrediction(t *testing.T) {
	published := fixedNow().Add(-10 * time.Hour)
	news := &stubNews{articles: []Article{
		{
			Title:       "OpenAI will launch its next model by March 2026",
			Description: "The company confirmed a launch window for the release.",
			URL:         "https://example.com/openai",
			SourceName:  "Reuters",
			PublishedAt: published,
		},
		{
			Title:       "Anthropic expands AI partnership with enterprise vendors",
			Description: "New artificial intelligence deals announced.",
			URL:         "https://example.com/anthropic",
			SourceName:  "Niche Blog",
			PublishedAt: published,
		},
	}}
	// A social trend forces the strict news validation path.
	reddit := &stubReddit{posts: []RedditPost{{
		ID:        "r1",
		Title:     "FDA will approve the AI diagnostics tool by June 2025",
		Subreddit: "artificial",
		Permalink: "/r/artificial/comments/r1",
		Score:     50,
		CreatedAt: fixedNow().Add(-1 * time.Hour),
	}}}

	g := NewGenerator(news, reddit, nil, nil, nil, nil)
	g.now = fixedNow

	trends, err := g.Generate(context.Background(), []string{"AI"})
	require.NoError(t, err)
	require.Len(t, trends, 2)

	var newsTrend *trend.Trend
	for i := range trends {
		if trends[i].Source == trend.SourceNews {
			newsTrend = &trends[i]
		}
	}
	require.NotNil(t, newsTrend)

	// The first article is marketable, so it leads the prediction.
	assert.True(t, newsTrend.Marketable)
	assert.True(t, strings.HasPrefix(newsTrend.Title, "Will "))
	assert.Equal(t, "https://example.com/openai", newsTrend.URL)
	assert.NotEmpty(t, newsTrend.Keywords)

	// base 35, 2 recent articles add 4, 2 articles add 3, marketable
	// adds 8, one credible source adds 1.5, rounded to 52
	assert.Equal(t, 52, newsTrend.Probability)
}

func TestPrioritySortOrdering(t *testing.T) {
	trends := []trend.Trend{
		{Title: "news plain", Source: trend.SourceNews, Probability: 60},
		{Title: "social", Source: trend.SourceReddit, Probability: 30, Marketable: true},
		{Title: "market", Source: trend.SourcePolymarket, Probability: 25},
		{Title: "news marketable", Source: trend.SourceNews, Probability: 40, Marketable: true},
		{Title: "tweet plain", Source: trend.SourceTwitter, Probability: 35},
	}

	prioritySort(trends)

	titles := make([]string, len(trends))
	for i, tr := range trends {
		titles[i] = tr.Title
	}
	assert.Equal(t, []string{
		"market",
		"news marketable",
		"social",
		"tweet plain",
		"news plain",
	}, titles)
}

func TestGenerateDeduplicatesAcrossSources(t *testing.T) {
	created := fixedNow().Add(-2 * time.Hour)
	reddit := &stubReddit{posts: []RedditPost{{
		ID:        "a",
		Title:     "Nintendo will launch the new console by December 2025",
		Subreddit: "gaming",
		Permalink: "/r/gaming/comments/a",
		Score:     200,
		CreatedAt: created,
	}}}
	twitter := &stubTwitter{tweets: []Tweet{{
		ID:        "t",
		Text:      "Nintendo will launch the new console by December 2025",
		Author:    "gamingnews",
		Likes:     150,
		CreatedAt: created,
	}}}

	g := NewGenerator(nil, reddit, twitter, nil, nil, nil)
	g.now = fixedNow

	trends, err := g.Generate(context.Background(), []string{"Gaming"})
	require.NoError(t, err)
	require.Len(t, trends, 1)
}

func TestMarketableArticlesDropVersionNoise(t *testing.T) {
	articles := []Article{
		{
			Title:       "libtensor 0.0.17.1 released with approval workflow",
			Description: "pip install the new package by running the update",
		},
		{
			Title:       "Regulator will decide on the merger by October 2025",
			Description: "A final approval decision is expected before the deadline.",
		},
	}

	kept := marketableArticles(articles)
	require.Len(t, kept, 1)
	assert.Contains(t, kept[0].Title, "merger")
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	title := "日本銀行が金利を引き上げると市場は予想している"

	short := truncate(title, 10)
	assert.True(t, utf8.ValidString(short))
	assert.Equal(t, 10, utf8.RuneCountInString(short))
	assert.True(t, strings.HasSuffix(short, "..."))

	assert.Equal(t, title, truncate(title, 50))
	assert.Equal(t, "short", truncate("short", 20))
}
