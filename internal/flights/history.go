package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AircraftFlight is one leg from the OpenSky /flights/aircraft endpoint.
// Airport codes are OpenSky estimates and may be empty.
type AircraftFlight struct {
	ICAO24              string `json:"icao24"`
	Callsign            string `json:"callsign"`
	FirstSeen           int64  `json:"firstSeen"`
	LastSeen            int64  `json:"lastSeen"`
	EstDepartureAirport string `json:"estDepartureAirport"`
	EstArrivalAirport   string `json:"estArrivalAirport"`
}

// History looks up the recent legs flown by one aircraft
type History interface {
	RecentFlights(ctx context.Context, icao24 string, begin, end time.Time) ([]AircraftFlight, error)
}

// NewOpenSkyHistory creates an anonymous client for OpenSky flight history
func NewOpenSkyHistory(baseURL string) History {
	if baseURL == "" {
		baseURL = DefaultOpenSkyURL
	}
	return &openSkySource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RecentFlights returns the legs seen between begin and end. OpenSky answers
// 404 when the aircraft has no legs in the window; that is an empty result.
func (s *openSkySource) RecentFlights(ctx context.Context, icao24 string, begin, end time.Time) ([]AircraftFlight, error) {
	params := url.Values{}
	params.Set("icao24", strings.ToLower(strings.TrimSpace(icao24)))
	params.Set("begin", strconv.FormatInt(begin.Unix(), 10))
	params.Set("end", strconv.FormatInt(end.Unix(), 10))
	queryURL := fmt.Sprintf("%s/flights/aircraft?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, &ErrFeedFailed{Reason: err.Error()}
	}
	req.Header.Set("User-Agent", "GhostFlight/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[ERROR] Flight history request failed: icao24=%s err=%v", icao24, err)
		return nil, &ErrFeedFailed{Reason: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		log.Printf("[FEED] No flight history: icao24=%s", icao24)
		return []AircraftFlight{}, nil
	case http.StatusTooManyRequests:
		log.Printf("[FEED] Rate limited by provider")
		return nil, &ErrFeedFailed{StatusCode: resp.StatusCode, Reason: "rate limit reached"}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[ERROR] Flight history API error: status=%d body=%s", resp.StatusCode, string(body))
		return nil, &ErrFeedFailed{
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	var legs []AircraftFlight
	if err := json.NewDecoder(resp.Body).Decode(&legs); err != nil {
		return nil, &ErrFeedFailed{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("failed to decode flight history: %v", err)}
	}
	for i := range legs {
		legs[i].Callsign = strings.TrimSpace(legs[i].Callsign)
		legs[i].EstDepartureAirport = strings.TrimSpace(legs[i].EstDepartureAirport)
		legs[i].EstArrivalAirport = strings.TrimSpace(legs[i].EstArrivalAirport)
	}

	log.Printf("[FEED] Fetched flight history: icao24=%s legs=%d", icao24, len(legs))
	return legs, nil
}

// LatestFlight returns the leg with the greatest LastSeen
func LatestFlight(legs []AircraftFlight) (AircraftFlight, bool) {
	if len(legs) == 0 {
		return AircraftFlight{}, false
	}
	latest := legs[0]
	for _, leg := range legs[1:] {
		if leg.LastSeen >= latest.LastSeen {
			latest = leg
		}
	}
	return latest, true
}
