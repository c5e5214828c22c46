// internal/service/predict/sources.go

package predict

import (
	"context"
	"time"

	"orbitfield/internal/domain/market"
)

// Article is a news article returned by a NewsSource.
type Article struct {
	Title       string
	Description string
	Content     string
	URL         string
	SourceName  string
	PublishedAt time.Time
}

// NewsSource searches recent news coverage.
type NewsSource interface {
	// Search returns recent English-language articles matching the query,
	// newest first.
	Search(ctx context.Context, query string, pageSize int) ([]Article, error)
}

// RedditPost is a post returned by a RedditSource.
type RedditPost struct {
	ID        string
	Title     string
	Body      string
	Subreddit string
	Permalink string
	Score     int
	Comments  int
	CreatedAt time.Time
}

// RedditSource searches hot posts across subreddits.
type RedditSource interface {
	// SearchHot returns hot posts from the past day matching the query.
	// An empty subreddit list searches all of Reddit.
	SearchHot(ctx context.Context, subreddits []string, query string, limit int) ([]RedditPost, error)
}

// Tweet is a post returned by a TwitterSource.
type Tweet struct {
	ID        string
	Text      string
	Author    string
	Retweets  int
	Likes     int
	CreatedAt time.Time
}

// TwitterSource searches recent tweets.
type TwitterSource interface {
	SearchRecent(ctx context.Context, query string, maxResults int) ([]Tweet, error)
}

// MarketSource lists open prediction-market events.
type MarketSource interface {
	OpenEvents(ctx context.Context) ([]market.CandidateEvent, error)
}
