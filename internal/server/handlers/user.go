// internal/server/handlers/user.go

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/domain/user"
)

// UserHandler handles user interest and subscription requests
type UserHandler struct {
	store  user.Store
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(store user.Store, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{
		store:  store,
		logger: logger,
	}
}

// GetInterests returns a user's interest categories
func (h *UserHandler) GetInterests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user ID", nil)
		return
	}

	u, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get user", zap.String("user_id", userID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get user", err)
		return
	}
	if u == nil {
		respondWithError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   u.ID,
		"interests": u.Interests,
	})
}

// UpdateInterests replaces a user's interest categories, creating the
// user on first write
func (h *UserHandler) UpdateInterests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user ID", nil)
		return
	}

	var payload struct {
		Interests []string `json:"interests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid interests payload", err)
		return
	}

	interests := make([]market.Category, 0, len(payload.Interests))
	for _, raw := range payload.Interests {
		category := market.ParseCategory(strings.TrimSpace(raw))
		if category == market.CategoryUnknown {
			respondUnknownCategory(w, raw)
			return
		}
		interests = append(interests, category)
	}

	if err := h.store.SaveUser(r.Context(), user.User{ID: userID, Interests: interests}); err != nil {
		h.logger.Error("failed to save user", zap.String("user_id", userID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update interests", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   userID,
		"interests": interests,
	})
}

// ListSubscriptions returns a user's trend subscriptions
func (h *UserHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user ID", nil)
		return
	}

	subs, err := h.store.ListSubscriptions(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list subscriptions", zap.String("user_id", userID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list subscriptions", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions": subs,
		"total":         len(subs),
	})
}

// CreateSubscription subscribes a user to a category
func (h *UserHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user ID", nil)
		return
	}

	var payload struct {
		Category       string `json:"category"`
		MinProbability int    `json:"min_probability"`
		MarketableOnly bool   `json:"marketable_only"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription payload", err)
		return
	}

	category := market.ParseCategory(payload.Category)
	if category == market.CategoryUnknown {
		respondUnknownCategory(w, payload.Category)
		return
	}

	sub := user.Subscription{
		ID:             uuid.New().String(),
		UserID:         userID,
		Category:       category,
		MinProbability: payload.MinProbability,
		MarketableOnly: payload.MarketableOnly,
	}

	if err := h.store.SaveSubscription(r.Context(), sub); err != nil {
		h.logger.Error("failed to save subscription", zap.String("user_id", userID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create subscription", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, sub)
}

// DeleteSubscription removes a user's subscription
func (h *UserHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	subscriptionID := chi.URLParam(r, "subID")
	if userID == "" || subscriptionID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user or subscription ID", nil)
		return
	}

	if err := h.store.DeleteSubscription(r.Context(), userID, subscriptionID); err != nil {
		respondWithError(w, http.StatusNotFound, "Subscription not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
