package geocoding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghost-flight/internal/models"
)

type countingGeocoder struct {
	calls int
	fail  bool
}

func (c *countingGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	c.calls++
	if c.fail {
		return nil, &ErrGeocodingFailed{Query: query, Reason: "no results found"}
	}
	return &Result{Coords: models.Coordinates{Lat: 20.5888, Lon: -100.3899}, DisplayName: query}, nil
}

func TestCachedGeocoderHit(t *testing.T) {
	inner := &countingGeocoder{}
	g := NewCachedGeocoder(inner, 8, time.Hour)

	first, err := g.Geocode(context.Background(), "Querétaro centro")
	require.NoError(t, err)
	second, err := g.Geocode(context.Background(), "  QUERÉTARO CENTRO ")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.Coords, second.Coords)
}

func TestCachedGeocoderDoesNotCacheFailures(t *testing.T) {
	inner := &countingGeocoder{fail: true}
	g := NewCachedGeocoder(inner, 8, time.Hour)

	_, err := g.Geocode(context.Background(), "Nowhere")
	assert.Error(t, err)
	_, err = g.Geocode(context.Background(), "Nowhere")
	assert.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoderExpires(t *testing.T) {
	inner := &countingGeocoder{}
	g := NewCachedGeocoder(inner, 8, 10*time.Millisecond)

	_, err := g.Geocode(context.Background(), "Toluca")
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	_, err = g.Geocode(context.Background(), "Toluca")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}
