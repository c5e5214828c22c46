// internal/server/handlers/trend.go

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/domain/trend"
	"orbitfield/internal/service/marketable"
)

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	store      trend.Store
	detector   trend.Detector
	marketable *marketable.Service
	logger     *zap.Logger
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(store trend.Store, detector trend.Detector, mkt *marketable.Service, logger *zap.Logger) *TrendHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrendHandler{
		store:      store,
		detector:   detector,
		marketable: mkt,
		logger:     logger,
	}
}

// GetTrends returns stored trends matching the query filters
func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := trend.Filter{}

	for _, raw := range splitParam(query.Get("categories")) {
		category := market.ParseCategory(raw)
		if category == market.CategoryUnknown {
			respondUnknownCategory(w, raw)
			return
		}
		filter.Categories = append(filter.Categories, category)
	}

	for _, raw := range splitParam(query.Get("sources")) {
		filter.Sources = append(filter.Sources, trend.Source(strings.ToLower(raw)))
	}

	if v := query.Get("min_probability"); v != "" {
		minProbability, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid min_probability", err)
			return
		}
		filter.MinProbability = minProbability
	}

	if v := query.Get("marketable"); v != "" {
		marketableOnly, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid marketable flag", err)
			return
		}
		filter.MarketableOnly = marketableOnly
	}

	if v := query.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid since timestamp", err)
			return
		}
		filter.Since = since
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		filter.Limit = limit
	}

	trends, err := h.store.FindTrends(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to find trends", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get trends", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"total":  len(trends),
	})
}

// SaveTrend upserts a trend
func (h *TrendHandler) SaveTrend(w http.ResponseWriter, r *http.Request) {
	var t trend.Trend
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid trend payload", err)
		return
	}

	if t.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Trend title is required", nil)
		return
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	if err := h.store.SaveTrend(r.Context(), t); err != nil {
		h.logger.Error("failed to save trend", zap.String("id", t.ID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to save trend", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, t)
}

// GetTrend returns a specific trend by ID
func (h *TrendHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing trend ID", nil)
		return
	}

	t, err := h.store.GetTrend(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get trend", zap.String("id", id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get trend", err)
		return
	}
	if t == nil {
		respondWithError(w, http.StatusNotFound, "Trend not found", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, t)
}

// PredictTrends runs a discovery pass for the requested interests
func (h *TrendHandler) PredictTrends(w http.ResponseWriter, r *http.Request) {
	interests := splitParam(r.URL.Query().Get("interests"))
	if len(interests) == 0 {
		respondWithError(w, http.StatusBadRequest, "Missing interests", nil)
		return
	}

	trends, err := h.detector.Generate(r.Context(), interests)
	if err != nil {
		h.logger.Error("trend generation failed", zap.Strings("interests", interests), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to generate trends", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"total":  len(trends),
	})
}

// GetMarketableEvents scans news for events that could become markets
func (h *TrendHandler) GetMarketableEvents(w http.ResponseWriter, r *http.Request) {
	interests := splitParam(r.URL.Query().Get("interests"))
	if len(interests) == 0 {
		respondWithError(w, http.StatusBadRequest, "Missing interests", nil)
		return
	}

	events, err := h.marketable.Scan(r.Context(), interests)
	if err != nil {
		h.logger.Error("marketable scan failed", zap.Strings("interests", interests), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch marketable events", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  len(events),
	})
}

// splitParam splits a comma-separated query parameter, dropping empty
// entries.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondUnknownCategory rejects an unrecognized category value and
// lists the accepted ones.
func respondUnknownCategory(w http.ResponseWriter, raw string) {
	valid := make([]string, 0, len(market.Categories()))
	for _, c := range market.Categories() {
		valid = append(valid, string(c))
	}
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":            "Unknown category: " + raw,
		"valid_categories": valid,
	})
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil && code < 500 {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
