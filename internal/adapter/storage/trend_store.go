// internal/adapter/storage/trend_store.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/domain/trend"
)

// defaultFindLimit bounds unfiltered trend listings.
const defaultFindLimit = 100

// TrendStore implements storage for trends
type TrendStore struct {
	db *pgxpool.Pool
}

// NewTrendStore creates a new trend store
func NewTrendStore(db *pgxpool.Pool) *TrendStore {
	return &TrendStore{
		db: db,
	}
}

// SaveTrend inserts or updates a trend
func (s *TrendStore) SaveTrend(ctx context.Context, t trend.Trend) error {
	query := `
		INSERT INTO trends (
			id, title, summary, category, source, url,
			keywords, probability, engagement,
			marketable, event_type, deadline, marketability_score,
			events, detected_at, last_updated
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16
		)
		ON CONFLICT (id) DO UPDATE
		SET
			title = $2,
			summary = $3,
			category = $4,
			source = $5,
			url = $6,
			keywords = $7,
			probability = $8,
			engagement = $9,
			marketable = $10,
			event_type = $11,
			deadline = $12,
			marketability_score = $13,
			events = $14,
			last_updated = $16
	`

	if t.DetectedAt.IsZero() {
		t.DetectedAt = time.Now()
	}
	if t.LastUpdated.IsZero() {
		t.LastUpdated = time.Now()
	}

	eventsJSON, err := json.Marshal(t.Events)
	if err != nil {
		return fmt.Errorf("error marshaling events: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		t.ID,
		t.Title,
		t.Summary,
		string(t.Category),
		string(t.Source),
		t.URL,
		t.Keywords,
		t.Probability,
		t.Engagement,
		t.Marketable,
		t.EventType,
		t.Deadline,
		t.MarketabilityScore,
		eventsJSON,
		t.DetectedAt,
		t.LastUpdated,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetTrend retrieves a trend by ID. A missing trend returns nil without
// an error.
func (s *TrendStore) GetTrend(ctx context.Context, id string) (*trend.Trend, error) {
	query := `
		SELECT
			id, title, summary, category, source, url,
			keywords, probability, engagement,
			marketable, event_type, deadline, marketability_score,
			events, detected_at, last_updated
		FROM trends
		WHERE id = $1
	`

	t, err := scanTrend(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying trend: %w", err)
	}
	return t, nil
}

// FindTrends finds trends matching the filter
func (s *TrendStore) FindTrends(ctx context.Context, filter trend.Filter) ([]trend.Trend, error) {
	query := `
		SELECT
			id, title, summary, category, source, url,
			keywords, probability, engagement,
			marketable, event_type, deadline, marketability_score,
			events, detected_at, last_updated
		FROM trends
		WHERE probability >= $1
	`

	args := []interface{}{filter.MinProbability}
	argIndex := 2

	if len(filter.Categories) > 0 {
		categories := make([]string, len(filter.Categories))
		for i, c := range filter.Categories {
			categories[i] = string(c)
		}
		query += fmt.Sprintf(" AND category = ANY($%d)", argIndex)
		args = append(args, categories)
		argIndex++
	}

	if len(filter.Sources) > 0 {
		sources := make([]string, len(filter.Sources))
		for i, src := range filter.Sources {
			sources[i] = string(src)
		}
		query += fmt.Sprintf(" AND source = ANY($%d)", argIndex)
		args = append(args, sources)
		argIndex++
	}

	if filter.MarketableOnly {
		query += " AND marketable = true"
	}

	if !filter.Since.IsZero() {
		query += fmt.Sprintf(" AND detected_at >= $%d", argIndex)
		args = append(args, filter.Since)
		argIndex++
	}

	limit := filter.Limit
	if limit <= 0 || limit > defaultFindLimit {
		limit = defaultFindLimit
	}
	query += fmt.Sprintf(" ORDER BY detected_at DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var trends []trend.Trend
	for rows.Next() {
		t, err := scanTrend(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning trend: %w", err)
		}
		trends = append(trends, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trends: %w", err)
	}

	return trends, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrend(row rowScanner) (*trend.Trend, error) {
	var (
		t          trend.Trend
		category   string
		source     string
		eventsJSON []byte
	)

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Summary,
		&category,
		&source,
		&t.URL,
		&t.Keywords,
		&t.Probability,
		&t.Engagement,
		&t.Marketable,
		&t.EventType,
		&t.Deadline,
		&t.MarketabilityScore,
		&eventsJSON,
		&t.DetectedAt,
		&t.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	t.Category = market.Category(category)
	t.Source = trend.Source(source)

	if len(eventsJSON) > 0 {
		if err := json.Unmarshal(eventsJSON, &t.Events); err != nil {
			return nil, fmt.Errorf("error unmarshaling events: %w", err)
		}
	}

	return &t, nil
}
