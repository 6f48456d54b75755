package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ghost-flight/internal/models"
)

// DefaultNominatimURL is the public OpenStreetMap geocoder
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// Result contains the result of a geocoding operation
type Result struct {
	Coords      models.Coordinates
	DisplayName string
}

// Geocoder resolves place names such as "Aeropuerto Toluca" to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// ErrGeocodingFailed is returned when a place name cannot be resolved
type ErrGeocodingFailed struct {
	Query  string
	Reason string
}

func (e *ErrGeocodingFailed) Error() string {
	return fmt.Sprintf("geocoding failed for %q: %s", e.Query, e.Reason)
}

type nominatimGeocoder struct {
	baseURL      string
	countryCodes string
	httpClient   *http.Client
	rateLimiter  *time.Ticker
}

type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimGeocoder creates a Nominatim geocoder limited to one request
// per second. countryCodes (e.g. "mx") restricts results when non-empty.
func NewNominatimGeocoder(baseURL, countryCodes string) Geocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &nominatimGeocoder{
		baseURL:      baseURL,
		countryCodes: countryCodes,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		rateLimiter: time.NewTicker(1 * time.Second),
	}
}

func (g *nominatimGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	select {
	case <-g.rateLimiter.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if g.countryCodes != "" {
		params.Set("countrycodes", g.countryCodes)
	}
	queryURL := g.baseURL + "/search?" + params.Encode()
	log.Printf("[GEOCODING] Request: query=%s", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, &ErrGeocodingFailed{Query: query, Reason: err.Error()}
	}
	req.Header.Set("User-Agent", "GhostFlight/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[ERROR] Geocoding request failed: query=%s err=%v", query, err)
		return nil, &ErrGeocodingFailed{Query: query, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[ERROR] Geocoding API error: query=%s status=%d", query, resp.StatusCode)
		return nil, &ErrGeocodingFailed{
			Query:  query,
			Reason: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &ErrGeocodingFailed{Query: query, Reason: err.Error()}
	}
	if len(results) == 0 {
		log.Printf("[GEOCODING] No results: query=%s", query)
		return nil, &ErrGeocodingFailed{Query: query, Reason: "no results found"}
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, &ErrGeocodingFailed{Query: query, Reason: "invalid latitude"}
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, &ErrGeocodingFailed{Query: query, Reason: "invalid longitude"}
	}

	log.Printf("[GEOCODING] Response: query=%s lat=%.6f lon=%.6f", query, lat, lon)
	return &Result{
		Coords:      models.Coordinates{Lat: lat, Lon: lon},
		DisplayName: first.DisplayName,
	}, nil
}
