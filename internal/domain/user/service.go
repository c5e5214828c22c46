// internal/domain/user/service.go

package user

import (
	"context"
	"time"

	"orbitfield/internal/domain/market"
)

// User represents a dashboard user and the interest categories that
// drive trend generation for them.
type User struct {
	ID        string
	Interests []market.Category
	CreatedAt time.Time
	LastSeen  time.Time
}

// Subscription binds a user to a category so trend alerts can fan out.
type Subscription struct {
	ID             string
	UserID         string
	Category       market.Category
	MinProbability int
	MarketableOnly bool
	CreatedAt      time.Time
}

// Store defines the interface for user persistence
type Store interface {
	// SaveUser creates or updates a user
	SaveUser(ctx context.Context, u User) error

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id string) (*User, error)

	// UpdateInterests replaces a user's interest list
	UpdateInterests(ctx context.Context, userID string, interests []market.Category) error

	// SaveSubscription creates a subscription
	SaveSubscription(ctx context.Context, sub Subscription) error

	// ListSubscriptions retrieves a user's subscriptions
	ListSubscriptions(ctx context.Context, userID string) ([]Subscription, error)

	// DeleteSubscription removes a subscription owned by the user
	DeleteSubscription(ctx context.Context, userID, subscriptionID string) error
}
