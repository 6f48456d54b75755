package flights

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleHistory = `[
  {"icao24":"0d0a1b","firstSeen":1760700000,"lastSeen":1760705000,"estDepartureAirport":"MMGL","estArrivalAirport":"MMMX","callsign":"AMX401  "},
  {"icao24":"0d0a1b","firstSeen":1760760000,"lastSeen":1760768000,"estDepartureAirport":"MMMX","estArrivalAirport":null,"callsign":"AMX402  "}
]`

func TestRecentFlights_Success(t *testing.T) {
	end := time.Unix(1760788800, 0)
	begin := end.Add(-24 * time.Hour)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flights/aircraft" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("icao24") != "0d0a1b" {
			t.Errorf("icao24 = %q, want lowercase 0d0a1b", q.Get("icao24"))
		}
		if q.Get("begin") != "1760702400" || q.Get("end") != "1760788800" {
			t.Errorf("window = %s..%s", q.Get("begin"), q.Get("end"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleHistory))
	}))
	defer server.Close()

	src := &openSkySource{baseURL: server.URL, httpClient: server.Client()}

	legs, err := src.RecentFlights(context.Background(), "0D0A1B", begin, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}
	if legs[0].Callsign != "AMX401" {
		t.Errorf("callsign = %q, want trimmed AMX401", legs[0].Callsign)
	}
	if legs[1].EstArrivalAirport != "" {
		t.Errorf("null arrival should decode empty, got %q", legs[1].EstArrivalAirport)
	}
}

func TestRecentFlights_NotFoundIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := &openSkySource{baseURL: server.URL, httpClient: server.Client()}

	legs, err := src.RecentFlights(context.Background(), "abc123", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(legs) != 0 {
		t.Errorf("expected no legs, got %d", len(legs))
	}
}

func TestRecentFlights_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	src := &openSkySource{baseURL: server.URL, httpClient: server.Client()}

	_, err := src.RecentFlights(context.Background(), "abc123", time.Now().Add(-time.Hour), time.Now())
	var feedErr *ErrFeedFailed
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected ErrFeedFailed, got %v", err)
	}
	if feedErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", feedErr.StatusCode)
	}
}

func TestLatestFlight(t *testing.T) {
	if _, ok := LatestFlight(nil); ok {
		t.Error("expected no latest flight for empty history")
	}

	legs := []AircraftFlight{
		{Callsign: "B", LastSeen: 300},
		{Callsign: "A", LastSeen: 100},
		{Callsign: "C", LastSeen: 200},
	}
	latest, ok := LatestFlight(legs)
	if !ok || latest.Callsign != "B" {
		t.Errorf("latest = %+v, want callsign B", latest)
	}
}

func TestNewOpenSkyHistory_DefaultURL(t *testing.T) {
	src := NewOpenSkyHistory("").(*openSkySource)
	if src.baseURL != DefaultOpenSkyURL {
		t.Errorf("baseURL = %q, want %q", src.baseURL, DefaultOpenSkyURL)
	}
}
