package trend

import (
	"time"

	"orbitfield/internal/domain/market"
)

// Source identifies where a trend was discovered
type Source string

const (
	SourceNews       Source = "news"
	SourceReddit     Source = "reddit"
	SourceTwitter    Source = "twitter"
	SourcePolymarket Source = "polymarket"
)

// Trend represents a discovered topic that could become a prediction market
type Trend struct {
	ID                 string
	Title              string
	Summary            string
	Category           market.Category
	Source             Source
	URL                string
	Keywords           []string
	Probability        int
	Engagement         int
	Marketable         bool
	EventType          string
	Deadline           string
	MarketabilityScore int
	Events             []market.EventLink
	DetectedAt         time.Time
	LastUpdated        time.Time
}

// Filter defines criteria for filtering stored trends
type Filter struct {
	Categories     []market.Category
	Sources        []Source
	MinProbability int
	MarketableOnly bool
	Since          time.Time
	Limit          int
}
