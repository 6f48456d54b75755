package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ghost-flight/internal/database"
	"ghost-flight/internal/flights"
	"ghost-flight/internal/geocoding"
	"ghost-flight/internal/metrics"
	"ghost-flight/internal/models"
	"ghost-flight/internal/routing"
)

// TickRunner is the part of the monitor the HTTP layer needs
type TickRunner interface {
	RunOnce(ctx context.Context) (*models.TickResult, error)
	Latest() *models.TickResult
}

// Handler provides common handler utilities and dependencies
type Handler struct {
	DB        database.DataStore
	Geocoder  geocoding.Geocoder
	Optimizer routing.Optimizer
	Monitor   TickRunner
	History   flights.History
	Metrics   *metrics.Collector
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] Failed to encode response: status=%d err=%v", status, err)
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// handleNotFound handles 404 errors
func (h *Handler) handleNotFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// handleValidationError handles 400 errors
func (h *Handler) handleValidationError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
}

// handleRouteInvalid reports which control point was rejected
func (h *Handler) handleRouteInvalid(w http.ResponseWriter, err *routing.ErrRouteInvalid) {
	details := map[string]interface{}{"field": err.Field}
	if err.Index >= 0 {
		details["index"] = err.Index
	}
	h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Reason, details)
}

// handleGeocodingError handles 422 errors for place names that did not resolve
func (h *Handler) handleGeocodingError(w http.ResponseWriter, err *geocoding.ErrGeocodingFailed) {
	h.writeError(w, http.StatusUnprocessableEntity, "GEOCODING_FAILED", err.Error(), map[string]interface{}{
		"query": err.Query,
	})
}

// handleRoutingError handles 422 errors for routes that could not be built
func (h *Handler) handleRoutingError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusUnprocessableEntity, "ROUTING_FAILED", message, nil)
}

// handleFeedError handles 503 errors when the flight feed is unavailable
func (h *Handler) handleFeedError(w http.ResponseWriter, err error) {
	var feedErr *flights.ErrFeedFailed
	if errors.As(err, &feedErr) {
		h.writeError(w, http.StatusServiceUnavailable, "FEED_UNAVAILABLE", feedErr.Reason, map[string]interface{}{
			"status_code":  feedErr.StatusCode,
			"rate_limited": feedErr.RateLimited(),
		})
		return
	}
	h.writeError(w, http.StatusServiceUnavailable, "FEED_UNAVAILABLE", err.Error(), nil)
}

// handleInternalError handles 500 errors
func (h *Handler) handleInternalError(w http.ResponseWriter, err error) {
	log.Printf("[ERROR] Internal error: %v", err)
	h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred. Please try again.", nil)
}

// checkNotFound checks if an error is a not found error
func (h *Handler) checkNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// HandleHealth handles GET /api/v1/health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}

	if h.DB != nil {
		if err := h.DB.HealthCheck(r.Context()); err != nil {
			log.Printf("[ERROR] Health check failed: err=%v", err)
			h.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "degraded",
				"database": err.Error(),
			})
			return
		}
	}

	if h.Monitor != nil {
		if latest := h.Monitor.Latest(); latest != nil {
			status["last_tick"] = latest.At
		}
	}

	h.writeJSON(w, http.StatusOK, status)
}
