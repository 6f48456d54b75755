package flights

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ghost-flight/internal/models"
)

// DefaultOpenSkyURL is the public OpenSky REST API
const DefaultOpenSkyURL = "https://opensky-network.org/api"

type openSkySource struct {
	baseURL    string
	httpClient *http.Client
	bbox       BoundingBox
}

// NewOpenSkySource creates an anonymous OpenSky state-vector feed for a bounding box
func NewOpenSkySource(baseURL string, bbox BoundingBox) Source {
	if baseURL == "" {
		baseURL = DefaultOpenSkyURL
	}
	return &openSkySource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		bbox: bbox,
	}
}

func (s *openSkySource) Fetch(ctx context.Context) ([]models.Flight, error) {
	params := url.Values{}
	params.Set("lamin", strconv.FormatFloat(s.bbox.LatMin, 'f', -1, 64))
	params.Set("lomin", strconv.FormatFloat(s.bbox.LonMin, 'f', -1, 64))
	params.Set("lamax", strconv.FormatFloat(s.bbox.LatMax, 'f', -1, 64))
	params.Set("lomax", strconv.FormatFloat(s.bbox.LonMax, 'f', -1, 64))
	queryURL := fmt.Sprintf("%s/states/all?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		log.Printf("[ERROR] Failed to create feed request: err=%v", err)
		return nil, &ErrFeedFailed{Reason: err.Error()}
	}
	req.Header.Set("User-Agent", "GhostFlight/1.0")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[ERROR] Feed request failed: err=%v", err)
		return nil, &ErrFeedFailed{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Printf("[FEED] Rate limited by provider")
		return nil, &ErrFeedFailed{StatusCode: resp.StatusCode, Reason: "rate limit reached"}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[ERROR] Feed API error: status=%d body=%s", resp.StatusCode, string(body))
		return nil, &ErrFeedFailed{
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	flights, err := DecodeStates(resp.Body)
	if err != nil {
		log.Printf("[ERROR] Failed to decode feed response: err=%v", err)
		return nil, &ErrFeedFailed{StatusCode: resp.StatusCode, Reason: err.Error()}
	}

	log.Printf("[FEED] Fetched states: flights=%d elapsed=%v", len(flights), time.Since(start))
	return flights, nil
}
