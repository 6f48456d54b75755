package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"ghost-flight/internal/flights"
	"ghost-flight/internal/models"
	"ghost-flight/internal/monitor"
)

// historyWindow is how far back the route lookup searches
const historyWindow = 24 * time.Hour

// FlightListResponse represents the latest snapshot
type FlightListResponse struct {
	TickID  string          `json:"tick_id,omitempty"`
	Flights []models.Flight `json:"flights"`
	Total   int             `json:"total"`
}

// ConflictListResponse represents what the latest tick detected
type ConflictListResponse struct {
	TickID    string                 `json:"tick_id,omitempty"`
	Conflicts []models.ConflictEvent `json:"conflicts"`
	Alerts    []models.Alert         `json:"alerts"`
}

// HandleListFlights handles GET /api/v1/flights
func (h *Handler) HandleListFlights(w http.ResponseWriter, r *http.Request) {
	resp := FlightListResponse{Flights: []models.Flight{}}
	if latest := h.Monitor.Latest(); latest != nil {
		resp.TickID = latest.ID
		resp.Flights = latest.Flights
	}
	resp.Total = len(resp.Flights)

	log.Printf("[HTTP] GET /api/v1/flights: count=%d", resp.Total)
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleListConflicts handles GET /api/v1/conflicts
func (h *Handler) HandleListConflicts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, conflictResponse(h.Monitor.Latest()))
}

// HandleScanConflicts handles POST /api/v1/conflicts/scan
func (h *Handler) HandleScanConflicts(w http.ResponseWriter, r *http.Request) {
	result, err := h.Monitor.RunOnce(r.Context())
	if err != nil {
		if errors.Is(err, monitor.ErrTickInProgress) {
			h.writeError(w, http.StatusConflict, "TICK_IN_PROGRESS", "A scan is already running", nil)
			return
		}
		log.Printf("[ERROR] Manual scan failed: err=%v", err)
		h.handleFeedError(w, err)
		return
	}

	log.Printf("[HTTP] POST /api/v1/conflicts/scan: conflicts=%d", len(result.Conflicts))
	h.writeJSON(w, http.StatusOK, conflictResponse(result))
}

// FlightRouteResponse is the most recent leg of one aircraft. Departure and
// Arrival are null when the estimated code is missing or not in the airport table.
type FlightRouteResponse struct {
	ICAO24        string          `json:"icao24"`
	Callsign      string          `json:"callsign"`
	DepartureCode string          `json:"est_departure_airport"`
	ArrivalCode   string          `json:"est_arrival_airport"`
	Departure     *models.Airport `json:"departure"`
	Arrival       *models.Airport `json:"arrival"`
	FirstSeen     time.Time       `json:"first_seen"`
	LastSeen      time.Time       `json:"last_seen"`
}

// HandleGetFlightRoute handles GET /api/v1/flights/{icao24}/route
func (h *Handler) HandleGetFlightRoute(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/flights/")
	icao24, suffix, ok := strings.Cut(rest, "/")
	if !ok || suffix != "route" {
		h.handleNotFound(w, "Not found")
		return
	}
	icao24 = strings.ToLower(strings.TrimSpace(icao24))
	if !isICAO24(icao24) {
		h.handleValidationError(w, "icao24 must be 6 hexadecimal characters")
		return
	}
	if h.History == nil {
		h.writeError(w, http.StatusServiceUnavailable, "FEED_UNAVAILABLE", "Flight history is not configured", nil)
		return
	}

	end := time.Now()
	legs, err := h.History.RecentFlights(r.Context(), icao24, end.Add(-historyWindow), end)
	if err != nil {
		log.Printf("[ERROR] Flight history failed: icao24=%s err=%v", icao24, err)
		h.handleFeedError(w, err)
		return
	}

	leg, ok := flights.LatestFlight(legs)
	if !ok {
		log.Printf("[HTTP] GET /api/v1/flights/{icao24}/route: no_recent_flights icao24=%s", icao24)
		h.handleNotFound(w, fmt.Sprintf("No recent flights for %s", icao24))
		return
	}

	resp := FlightRouteResponse{
		ICAO24:        icao24,
		Callsign:      leg.Callsign,
		DepartureCode: leg.EstDepartureAirport,
		ArrivalCode:   leg.EstArrivalAirport,
		FirstSeen:     time.Unix(leg.FirstSeen, 0).UTC(),
		LastSeen:      time.Unix(leg.LastSeen, 0).UTC(),
	}
	if resp.Callsign == "" {
		resp.Callsign = "N/A"
	}
	if resp.Departure, err = h.lookupAirport(r.Context(), leg.EstDepartureAirport); err != nil {
		h.handleInternalError(w, err)
		return
	}
	if resp.Arrival, err = h.lookupAirport(r.Context(), leg.EstArrivalAirport); err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] GET /api/v1/flights/{icao24}/route: icao24=%s from=%s to=%s",
		icao24, leg.EstDepartureAirport, leg.EstArrivalAirport)
	h.writeJSON(w, http.StatusOK, resp)
}

// lookupAirport returns nil for empty or unknown codes
func (h *Handler) lookupAirport(ctx context.Context, code string) (*models.Airport, error) {
	if code == "" {
		return nil, nil
	}
	airport, err := h.DB.Airports().GetByCode(ctx, code)
	if err != nil {
		if h.checkNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return airport, nil
}

func isICAO24(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func conflictResponse(result *models.TickResult) ConflictListResponse {
	resp := ConflictListResponse{
		Conflicts: []models.ConflictEvent{},
		Alerts:    []models.Alert{},
	}
	if result == nil {
		return resp
	}
	resp.TickID = result.ID
	if result.Conflicts != nil {
		resp.Conflicts = result.Conflicts
	}
	if result.Alerts != nil {
		resp.Alerts = result.Alerts
	}
	return resp
}
