package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeocoder(url string) *nominatimGeocoder {
	return &nominatimGeocoder{
		baseURL:      url,
		countryCodes: "mx",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		rateLimiter:  time.NewTicker(1 * time.Millisecond),
	}
}

func TestNominatimGeocodeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "mx", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "Aeropuerto Toluca", r.URL.Query().Get("q"))
		assert.Equal(t, "GhostFlight/1.0", r.Header.Get("User-Agent"))

		json.NewEncoder(w).Encode([]nominatimResponse{
			{Lat: "19.3371", Lon: "-99.5660", DisplayName: "Aeropuerto Internacional de Toluca"},
		})
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).Geocode(context.Background(), "Aeropuerto Toluca")

	require.NoError(t, err)
	assert.Equal(t, 19.3371, result.Coords.Lat)
	assert.Equal(t, -99.5660, result.Coords.Lon)
	assert.Equal(t, "Aeropuerto Internacional de Toluca", result.DisplayName)
}

func TestNominatimGeocodeFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		reason  string
	}{
		{
			name: "no results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
			reason: "no results found",
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("busy"))
			},
			reason: "HTTP 503: busy",
		},
		{
			name: "invalid latitude",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"lat":"x","lon":"-99"}]`))
			},
			reason: "invalid latitude",
		},
		{
			name: "invalid longitude",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"lat":"19","lon":"y"}]`))
			},
			reason: "invalid longitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := testGeocoder(server.URL).Geocode(context.Background(), "Nowhere")

			var geoErr *ErrGeocodingFailed
			require.True(t, errors.As(err, &geoErr))
			assert.Equal(t, "Nowhere", geoErr.Query)
			assert.Equal(t, tt.reason, geoErr.Reason)
		})
	}
}

func TestNominatimGeocodeInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := testGeocoder(server.URL).Geocode(context.Background(), "Querétaro centro")
	assert.Error(t, err)
}

func TestNominatimGeocodeContextCancellation(t *testing.T) {
	g := testGeocoder("http://127.0.0.1:0")
	g.rateLimiter = time.NewTicker(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Geocode(ctx, "Aeropuerto Felipe Ángeles")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewNominatimGeocoderDefaults(t *testing.T) {
	g := NewNominatimGeocoder("", "mx").(*nominatimGeocoder)
	assert.Equal(t, DefaultNominatimURL, g.baseURL)
	assert.Equal(t, "mx", g.countryCodes)
}
