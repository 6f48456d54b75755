package flights

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenSkyFetch_Success(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/states/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected User-Agent header")
		}
		gotQuery = map[string]string{
			"lamin": r.URL.Query().Get("lamin"),
			"lomin": r.URL.Query().Get("lomin"),
			"lamax": r.URL.Query().Get("lamax"),
			"lomax": r.URL.Query().Get("lomax"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleStates))
	}))
	defer server.Close()

	src := &openSkySource{
		baseURL:    server.URL,
		httpClient: server.Client(),
		bbox:       MexicoBoundingBox,
	}

	flights, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flights) != 4 {
		t.Errorf("expected 4 flights, got %d", len(flights))
	}

	expected := map[string]string{"lamin": "14", "lomin": "-118", "lamax": "33", "lomax": "-86"}
	for k, v := range expected {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestOpenSkyFetch_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	src := &openSkySource{baseURL: server.URL, httpClient: server.Client(), bbox: MexicoBoundingBox}

	_, err := src.Fetch(context.Background())
	var feedErr *ErrFeedFailed
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected ErrFeedFailed, got %v", err)
	}
	if !feedErr.RateLimited() {
		t.Errorf("expected rate limited error, got status %d", feedErr.StatusCode)
	}
}

func TestOpenSkyFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	src := &openSkySource{baseURL: server.URL, httpClient: server.Client(), bbox: MexicoBoundingBox}

	_, err := src.Fetch(context.Background())
	var feedErr *ErrFeedFailed
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected ErrFeedFailed, got %v", err)
	}
	if feedErr.RateLimited() {
		t.Error("500 should not be reported as rate limited")
	}
	if feedErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", feedErr.StatusCode)
	}
}

func TestOpenSkyFetch_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	src := &openSkySource{baseURL: server.URL, httpClient: server.Client(), bbox: MexicoBoundingBox}

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for invalid body")
	}
}

func TestNewOpenSkySource_DefaultURL(t *testing.T) {
	src := NewOpenSkySource("", MexicoBoundingBox).(*openSkySource)
	if src.baseURL != DefaultOpenSkyURL {
		t.Errorf("expected default URL, got %s", src.baseURL)
	}
}
