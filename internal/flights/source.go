package flights

import (
	"context"
	"fmt"

	"ghost-flight/internal/models"
)

// BoundingBox limits the area a feed reports flights for
type BoundingBox struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// MexicoBoundingBox covers Mexico and its surroundings
var MexicoBoundingBox = BoundingBox{LatMin: 14.0, LatMax: 33.0, LonMin: -118.0, LonMax: -86.0}

// Contains reports whether a point lies within the box
func (b BoundingBox) Contains(p models.Coordinates) bool {
	return p.Lat >= b.LatMin && p.Lat <= b.LatMax && p.Lon >= b.LonMin && p.Lon <= b.LonMax
}

// Source provides the current flight snapshot
type Source interface {
	Fetch(ctx context.Context) ([]models.Flight, error)
}

// ErrFeedFailed is returned when a flight feed cannot be read
type ErrFeedFailed struct {
	StatusCode int
	Reason     string
}

func (e *ErrFeedFailed) Error() string {
	return fmt.Sprintf("flight feed failed: %s", e.Reason)
}

// RateLimited reports whether the feed rejected the request for quota reasons
func (e *ErrFeedFailed) RateLimited() bool {
	return e.StatusCode == 429
}
