// internal/adapter/storage/user_store.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/domain/user"
)

// UserStore implements storage for users and their subscriptions
type UserStore struct {
	db *pgxpool.Pool
}

// NewUserStore creates a new user store
func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{
		db: db,
	}
}

// SaveUser creates or updates a user
func (s *UserStore) SaveUser(ctx context.Context, u user.User) error {
	query := `
		INSERT INTO users (
			id, interests, created_at, last_seen
		) VALUES (
			$1, $2, $3, $4
		)
		ON CONFLICT (id) DO UPDATE
		SET
			interests = $2,
			last_seen = $4
	`

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.LastSeen.IsZero() {
		u.LastSeen = time.Now()
	}

	_, err := s.db.Exec(
		ctx,
		query,
		u.ID,
		categoryStrings(u.Interests),
		u.CreatedAt,
		u.LastSeen,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID. A missing user returns nil without
// an error.
func (s *UserStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	query := `
		SELECT id, interests, created_at, last_seen
		FROM users
		WHERE id = $1
	`

	var (
		u         user.User
		interests []string
	)

	err := s.db.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&interests,
		&u.CreatedAt,
		&u.LastSeen,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	u.Interests = make([]market.Category, len(interests))
	for i, interest := range interests {
		u.Interests[i] = market.Category(interest)
	}

	return &u, nil
}

// UpdateInterests replaces a user's interest list
func (s *UserStore) UpdateInterests(ctx context.Context, userID string, interests []market.Category) error {
	query := `
		UPDATE users
		SET interests = $2, last_seen = $3
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, userID, categoryStrings(interests), time.Now())
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID)
	}

	return nil
}

// SaveSubscription creates a subscription
func (s *UserStore) SaveSubscription(ctx context.Context, sub user.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, user_id, category, min_probability, marketable_only, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (id) DO UPDATE
		SET
			category = $3,
			min_probability = $4,
			marketable_only = $5
	`

	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		ctx,
		query,
		sub.ID,
		sub.UserID,
		string(sub.Category),
		sub.MinProbability,
		sub.MarketableOnly,
		sub.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// ListSubscriptions retrieves a user's subscriptions
func (s *UserStore) ListSubscriptions(ctx context.Context, userID string) ([]user.Subscription, error) {
	query := `
		SELECT id, user_id, category, min_probability, marketable_only, created_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var subs []user.Subscription
	for rows.Next() {
		var (
			sub      user.Subscription
			category string
		)

		err := rows.Scan(
			&sub.ID,
			&sub.UserID,
			&category,
			&sub.MinProbability,
			&sub.MarketableOnly,
			&sub.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning subscription: %w", err)
		}

		sub.Category = market.Category(category)
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// DeleteSubscription removes a subscription owned by the user
func (s *UserStore) DeleteSubscription(ctx context.Context, userID, subscriptionID string) error {
	query := `
		DELETE FROM subscriptions
		WHERE id = $1 AND user_id = $2
	`

	tag, err := s.db.Exec(ctx, query, subscriptionID, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found for user %s", subscriptionID, userID)
	}

	return nil
}

func categoryStrings(categories []market.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}
