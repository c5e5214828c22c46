// internal/adapter/polymarket/client.go

package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"orbitfield/internal/domain/market"
)

const (
	defaultBaseURL = "https://gamma-api.polymarket.com"

	// fetchLimit over-fetches so the matcher has a wide pool to score.
	fetchLimit = 200

	cacheTTL       = 5 * time.Minute
	cacheSweep     = 10 * time.Minute
	openEventsKey  = "open-events"
	requestTimeout = 15 * time.Second
)

// Client fetches open events from the Polymarket gamma API. Responses
// are cached so repeated matching passes do not hammer the API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewClient creates a gamma API client. An empty baseURL uses the
// public endpoint.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		cache:  cache.New(cacheTTL, cacheSweep),
		logger: logger,
	}
}

// flexFloat decodes numbers the gamma API sometimes returns as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parsing numeric string %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type eventTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

type eventPayload struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []eventTag `json:"tags"`
	EndDate     string     `json:"endDate"`
	Liquidity   flexFloat  `json:"liquidity"`
	Volume      flexFloat  `json:"volume"`
}

// OpenEvents returns currently open events, newest first. Results are
// cached for five minutes.
func (c *Client) OpenEvents(ctx context.Context) ([]market.CandidateEvent, error) {
	if cached, ok := c.cache.Get(openEventsKey); ok {
		return cached.([]market.CandidateEvent), nil
	}

	url := fmt.Sprintf("%s/events?closed=false&limit=%d&order=id&ascending=false", c.baseURL, fetchLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating gamma request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching gamma events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gamma API returned status %d", resp.StatusCode)
	}

	payloads, err := decodeEvents(resp.Body)
	if err != nil {
		return nil, err
	}

	events := make([]market.CandidateEvent, 0, len(payloads))
	for _, p := range payloads {
		if p.Title == "" {
			continue
		}
		events = append(events, toCandidate(p))
	}

	c.cache.Set(openEventsKey, events, cache.DefaultExpiration)
	c.logger.Debug("fetched open events", zap.Int("count", len(events)))
	return events, nil
}

// decodeEvents handles the response shapes the gamma API has used: a
// bare array or an object wrapping one under data, results or events.
func decodeEvents(r io.Reader) ([]eventPayload, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding gamma response: %w", err)
	}

	var direct []eventPayload
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Data    []eventPayload `json:"data"`
		Results []eventPayload `json:"results"`
		Events  []eventPayload `json:"events"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding gamma response: %w", err)
	}
	switch {
	case wrapped.Data != nil:
		return wrapped.Data, nil
	case wrapped.Results != nil:
		return wrapped.Results, nil
	case wrapped.Events != nil:
		return wrapped.Events, nil
	}
	return nil, nil
}

func toCandidate(p eventPayload) market.CandidateEvent {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		label := t.Label
		if label == "" {
			label = t.Name
		}
		if label != "" {
			tags = append(tags, label)
		}
	}

	var endDate *time.Time
	if p.EndDate != "" {
		if parsed, err := time.Parse(time.RFC3339, p.EndDate); err == nil {
			endDate = &parsed
		}
	}

	return market.CandidateEvent{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Tags:        tags,
		Liquidity:   float64(p.Liquidity),
		Volume:      float64(p.Volume),
		EndDate:     endDate,
	}
}
