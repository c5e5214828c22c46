// internal/server/handlers/events.go

package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/service/events"
)

// EventsHandler handles Polymarket event lookup requests
type EventsHandler struct {
	service *events.Service
	logger  *zap.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(service *events.Service, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{
		service: service,
		logger:  logger,
	}
}

// GetSimilarEvents returns open markets related to a trend
func (h *EventsHandler) GetSimilarEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	eventsQuery := events.Query{
		Title:   query.Get("title"),
		Summary: query.Get("summary"),
	}

	if raw := query.Get("category"); raw != "" {
		category := market.ParseCategory(raw)
		if category == market.CategoryUnknown {
			respondUnknownCategory(w, raw)
			return
		}
		eventsQuery.Category = category
	}

	if eventsQuery.Title == "" && eventsQuery.Category == market.CategoryUnknown {
		respondWithError(w, http.StatusBadRequest, "Provide a title or category", nil)
		return
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		eventsQuery.Limit = limit
	}

	result, err := h.service.SimilarEvents(r.Context(), eventsQuery)
	if err != nil {
		h.logger.Error("similar events lookup failed",
			zap.String("title", eventsQuery.Title),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to find events", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events":   result.Events,
		"total":    len(result.Events),
		"strategy": result.Strategy,
	})
}
