package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"ghost-flight/internal/geocoding"
	"ghost-flight/internal/models"
	"ghost-flight/internal/routing"
)

// ControlPoint is either {"lat","lon"}, an ICAO airport code, or a place name
type ControlPoint struct {
	Coords *models.Coordinates
	Name   string
}

// UnmarshalJSON accepts either an object or a string
func (p *ControlPoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.Name)
	}

	var raw struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Lat == nil || raw.Lon == nil {
		return fmt.Errorf("point requires lat and lon")
	}
	p.Coords = &models.Coordinates{Lat: *raw.Lat, Lon: *raw.Lon}
	return nil
}

// OptimizeRouteRequest represents the request for route optimization
type OptimizeRouteRequest struct {
	Origin       *ControlPoint  `json:"origin"`
	Destination  *ControlPoint  `json:"destination"`
	Restrictions []ControlPoint `json:"restrictions"`
}

// airportNotFoundError reports an ICAO code missing from the airport table
type airportNotFoundError struct {
	Code string
}

func (e *airportNotFoundError) Error() string {
	return fmt.Sprintf("Airport %s not found", e.Code)
}

// HandleOptimizeRoute handles POST /api/v1/routes/optimize
func (h *Handler) HandleOptimizeRoute(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[HTTP] POST /api/v1/routes/optimize: invalid_json err=%v", err)
		h.handleValidationError(w, "Invalid request body")
		return
	}

	points, err := h.resolveControlPoints(r.Context(), &req)
	if err != nil {
		var invalid *routing.ErrRouteInvalid
		var notFound *airportNotFoundError
		var geoErr *geocoding.ErrGeocodingFailed
		switch {
		case errors.As(err, &invalid):
			log.Printf("[HTTP] POST /api/v1/routes/optimize: %v", invalid)
			h.handleRouteInvalid(w, invalid)
		case errors.As(err, &notFound):
			log.Printf("[HTTP] POST /api/v1/routes/optimize: unknown_airport code=%s", notFound.Code)
			h.handleNotFound(w, notFound.Error())
		case errors.As(err, &geoErr):
			h.handleGeocodingError(w, geoErr)
		default:
			h.handleInternalError(w, err)
		}
		return
	}

	log.Printf("[HTTP] POST /api/v1/routes/optimize: restrictions=%d", len(req.Restrictions))

	route := h.Optimizer.Optimize(points.List())
	if route == nil || len(route.Route) != len(req.Restrictions)+2 {
		h.handleRoutingError(w, "Optimizer returned an incomplete route")
		return
	}
	h.Metrics.ObserveRoute(route)

	h.writeJSON(w, http.StatusOK, route)
}

func (h *Handler) resolveControlPoints(ctx context.Context, req *OptimizeRouteRequest) (*routing.ControlPoints, error) {
	if req.Origin == nil {
		return nil, &routing.ErrRouteInvalid{Field: "origin", Index: -1, Reason: "origin is required"}
	}
	if req.Destination == nil {
		return nil, &routing.ErrRouteInvalid{Field: "destination", Index: -1, Reason: "destination is required"}
	}

	origin, err := h.resolvePoint(ctx, *req.Origin, "origin", -1)
	if err != nil {
		return nil, err
	}
	dest, err := h.resolvePoint(ctx, *req.Destination, "destination", -1)
	if err != nil {
		return nil, err
	}

	cp := &routing.ControlPoints{
		Origin:       origin,
		Destination:  dest,
		Restrictions: make([]models.Coordinates, 0, len(req.Restrictions)),
	}
	for i, p := range req.Restrictions {
		c, err := h.resolvePoint(ctx, p, "restrictions", i)
		if err != nil {
			return nil, err
		}
		cp.Restrictions = append(cp.Restrictions, c)
	}

	return cp, nil
}

// resolvePoint turns a control point into coordinates. Four-letter strings
// are looked up as ICAO codes first; anything else, or a four-letter name
// missing from the airport table, goes to the geocoder.
func (h *Handler) resolvePoint(ctx context.Context, p ControlPoint, field string, index int) (models.Coordinates, error) {
	if p.Coords != nil {
		c := *p.Coords
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			return c, &routing.ErrRouteInvalid{Field: field, Index: index, Reason: "coordinates out of range"}
		}
		return c, nil
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.Coordinates{}, &routing.ErrRouteInvalid{Field: field, Index: index, Reason: "empty airport code or place name"}
	}

	if isICAOCode(name) {
		code := strings.ToUpper(name)
		airport, err := h.DB.Airports().GetByCode(ctx, code)
		if err == nil {
			return airport.GetCoords(), nil
		}
		if !h.checkNotFound(err) {
			return models.Coordinates{}, err
		}
		if h.Geocoder == nil {
			return models.Coordinates{}, &airportNotFoundError{Code: code}
		}

		result, geoErr := h.Geocoder.Geocode(ctx, name)
		if geoErr != nil {
			log.Printf("[HTTP] Not an airport or known place: name=%s err=%v", name, geoErr)
			return models.Coordinates{}, &airportNotFoundError{Code: code}
		}
		return result.Coords, nil
	}

	if h.Geocoder == nil {
		return models.Coordinates{}, &routing.ErrRouteInvalid{Field: field, Index: index, Reason: "not a 4-letter ICAO code"}
	}
	result, err := h.Geocoder.Geocode(ctx, name)
	if err != nil {
		return models.Coordinates{}, err
	}
	return result.Coords, nil
}

func isICAOCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
