// internal/adapter/social/twitter.go

package social

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"go.uber.org/zap"

	"orbitfield/internal/service/predict"
)

const twitterHost = "https://api.twitter.com"

type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// TwitterClient searches recent tweets through the v2 API.
type TwitterClient struct {
	api    *twitter.Client
	logger *zap.Logger
}

// NewTwitterClient creates a Twitter search client.
func NewTwitterClient(bearerToken string, logger *zap.Logger) *TwitterClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TwitterClient{
		api: &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     &http.Client{Timeout: 10 * time.Second},
			Host:       twitterHost,
		},
		logger: logger,
	}
}

// SearchRecent returns recent tweets matching the query with their
// author usernames and engagement metrics.
func (c *TwitterClient) SearchRecent(ctx context.Context, query string, maxResults int) ([]predict.Tweet, error) {
	// The recent search endpoint accepts 10 to 100 results per page.
	if maxResults < 10 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults: maxResults,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldAuthorID,
		},
		Expansions: []twitter.Expansion{twitter.ExpansionAuthorID},
		UserFields: []twitter.UserField{twitter.UserFieldUserName, twitter.UserFieldName},
	}

	res, err := c.api.TweetRecentSearch(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching tweets: %w", err)
	}
	if res.Raw == nil {
		return nil, nil
	}

	authors := make(map[string]string)
	if res.Raw.Includes != nil {
		for _, user := range res.Raw.Includes.Users {
			authors[user.ID] = user.UserName
		}
	}

	tweets := make([]predict.Tweet, 0, len(res.Raw.Tweets))
	for _, t := range res.Raw.Tweets {
		if t == nil {
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339, t.CreatedAt)

		retweets, likes := 0, 0
		if t.PublicMetrics != nil {
			retweets = t.PublicMetrics.Retweets
			likes = t.PublicMetrics.Likes
		}

		author := authors[t.AuthorID]
		if author == "" {
			author = "twitter"
		}

		tweets = append(tweets, predict.Tweet{
			ID:        t.ID,
			Text:      t.Text,
			Author:    author,
			Retweets:  retweets,
			Likes:     likes,
			CreatedAt: createdAt,
		})
	}

	c.logger.Debug("fetched tweets", zap.Int("count", len(tweets)))
	return tweets, nil
}
