package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"ghost-flight/internal/models"
)

// HandleListZones handles GET /api/v1/zones
func (h *Handler) HandleListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.DB.Zones().List(r.Context())
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	if zones == nil {
		zones = []models.RestrictedZone{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"zones": zones,
		"total": len(zones),
	})
}

// HandleListAirports handles GET /api/v1/airports
func (h *Handler) HandleListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.DB.Airports().List(r.Context())
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	if airports == nil {
		airports = []models.Airport{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"airports": airports,
		"total":    len(airports),
	})
}

// HandleGetAirport handles GET /api/v1/airports/{code}
func (h *Handler) HandleGetAirport(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimPrefix(r.URL.Path, "/api/v1/airports/")
	if code == "" || strings.Contains(code, "/") {
		h.handleValidationError(w, "Invalid airport code")
		return
	}

	airport, err := h.DB.Airports().GetByCode(r.Context(), code)
	if err != nil {
		if h.checkNotFound(err) {
			log.Printf("[HTTP] GET /api/v1/airports/{code}: not_found code=%s", code)
			h.handleNotFound(w, fmt.Sprintf("Airport %s not found", strings.ToUpper(code)))
			return
		}
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, airport)
}
