// internal/domain/trend/detector.go

package trend

import (
	"context"
)

// Detector defines the interface for the trend discovery process
type Detector interface {
	// Start begins the periodic trend discovery loop
	Start(ctx context.Context) error

	// Stop gracefully stops the discovery loop
	Stop(ctx context.Context) error

	// Generate runs one discovery pass for the given interests and
	// returns the deduplicated, prioritized trends
	Generate(ctx context.Context, interests []string) ([]Trend, error)

	// RegisterTrendHandler registers a callback invoked for each newly
	// detected trend
	RegisterTrendHandler(handler func(Trend) error) error
}

// Store persists trends
type Store interface {
	// SaveTrend inserts or updates a trend
	SaveTrend(ctx context.Context, t Trend) error

	// GetTrend retrieves a trend by ID
	GetTrend(ctx context.Context, id string) (*Trend, error)

	// FindTrends finds trends matching the filter
	FindTrends(ctx context.Context, filter Filter) ([]Trend, error)
}
