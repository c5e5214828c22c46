// internal/adapter/social/reddit.go

package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"orbitfield/internal/service/predict"
)

const (
	redditBaseURL   = "https://www.reddit.com"
	redditTimeout   = 10 * time.Second
	redditUserAgent = "orbitfield/1.0"
)

// RedditClient searches Reddit's public JSON API.
type RedditClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewRedditClient creates a Reddit search client. An empty baseURL uses
// the public endpoint.
func NewRedditClient(baseURL string, logger *zap.Logger) *RedditClient {
	if baseURL == "" {
		baseURL = redditBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedditClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: redditTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logger,
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				SelfText    string  `json:"selftext"`
				Subreddit   string  `json:"subreddit"`
				Permalink   string  `json:"permalink"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchHot returns hot posts from the past day matching the query. An
// empty subreddit list searches all of Reddit. Rate limiting by Reddit
// is treated as an empty result.
func (c *RedditClient) SearchHot(ctx context.Context, subreddits []string, query string, limit int) ([]predict.RedditPost, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "hot")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("t", "day")

	var endpoint string
	if len(subreddits) > 0 {
		endpoint = fmt.Sprintf("%s/r/%s/search.json?%s&restrict_sr=on",
			c.baseURL, strings.Join(subreddits, "+"), params.Encode())
	} else {
		endpoint = fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating reddit request: %w", err)
	}
	req.Header.Set("User-Agent", redditUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching reddit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("reddit rate limit exceeded", zap.String("query", query))
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding reddit response: %w", err)
	}

	posts := make([]predict.RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, predict.RedditPost{
			ID:        d.ID,
			Title:     d.Title,
			Body:      d.SelfText,
			Subreddit: d.Subreddit,
			Permalink: d.Permalink,
			Score:     d.Score,
			Comments:  d.NumComments,
			CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}

	c.logger.Debug("fetched reddit posts",
		zap.String("query", query), zap.Int("count", len(posts)))
	return posts, nil
}
