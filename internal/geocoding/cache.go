package geocoding

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type cachedGeocoder struct {
	inner Geocoder
	cache *expirable.LRU[string, Result]
}

// NewCachedGeocoder wraps inner with an expiring LRU of successful lookups.
// Queries are keyed case-insensitively; failures are not cached.
func NewCachedGeocoder(inner Geocoder, size int, ttl time.Duration) Geocoder {
	if size <= 0 {
		size = 256
	}
	return &cachedGeocoder{
		inner: inner,
		cache: expirable.NewLRU[string, Result](size, nil, ttl),
	}
}

func (g *cachedGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if r, ok := g.cache.Get(key); ok {
		log.Printf("[GEOCODING] Cache hit: query=%s", query)
		return &r, nil
	}

	r, err := g.inner.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	g.cache.Add(key, *r)
	return r, nil
}
