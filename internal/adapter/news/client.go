// internal/adapter/news/client.go

package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"orbitfield/internal/service/predict"
)

const (
	defaultBaseURL = "https://newsapi.org"
	requestTimeout = 15 * time.Second
)

// Client talks to the NewsAPI everything endpoint. A rate limiter keeps
// the client inside the API's request budget.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a NewsAPI client. An empty baseURL uses the public
// endpoint.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logger,
	}
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type apiResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
	Message      string       `json:"message"`
}

// Search returns recent English-language articles matching the query,
// newest first.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]predict.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("news API key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("language", "en")
	params.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned status %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding news response: %w", err)
	}
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("news API error: %s", decoded.Message)
	}

	articles := make([]predict.Article, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		if a.Title == "" {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, predict.Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			SourceName:  a.Source.Name,
			PublishedAt: publishedAt,
		})
	}

	c.logger.Debug("fetched news articles",
		zap.String("query", query), zap.Int("count", len(articles)))
	return articles, nil
}
