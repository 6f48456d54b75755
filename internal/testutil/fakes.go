package testutil

import (
	"context"
	"sync"

	"ghost-flight/internal/models"
)

// FakeSource is a flights.Source that replays queued snapshots.
// Once the queue is drained it keeps returning the last snapshot.
type FakeSource struct {
	mu        sync.Mutex
	snapshots [][]models.Flight
	errs      []error
	calls     int

	// Block, when set, is received from before Fetch returns.
	Block chan struct{}
}

// NewFakeSource queues the given snapshots in order.
func NewFakeSource(snapshots ...[]models.Flight) *FakeSource {
	return &FakeSource{snapshots: snapshots}
}

// FailNext makes the next Fetch return err instead of a snapshot.
func (f *FakeSource) FailNext(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

// Calls reports how many times Fetch ran.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeSource) Fetch(ctx context.Context) ([]models.Flight, error) {
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}

	if len(f.snapshots) == 0 {
		return []models.Flight{}, nil
	}
	snap := f.snapshots[0]
	if len(f.snapshots) > 1 {
		f.snapshots = f.snapshots[1:]
	}
	return append([]models.Flight(nil), snap...), nil
}

// NewFlight builds a positioned flight at the given altitude.
func NewFlight(icao24, callsign string, lat, lon, alt float64) models.Flight {
	return models.Flight{
		ICAO24:    icao24,
		Callsign:  callsign,
		Latitude:  models.Float64(lat),
		Longitude: models.Float64(lon),
		Altitude:  models.Float64(alt),
	}
}

// ConflictingPair returns two flights about 1.1 km apart over Mexico City.
func ConflictingPair() []models.Flight {
	return []models.Flight{
		NewFlight("0d0001", "AMX401", 19.40, -99.10, 3000),
		NewFlight("0d0002", "VOI902", 19.41, -99.10, 3000),
	}
}

// TestZones is a small zone set for detector wiring tests.
func TestZones() []models.RestrictedZone {
	return []models.RestrictedZone{
		{ID: 1, Name: "Palacio Nacional", Lat: 19.4326, Lon: -99.1332, RadiusKm: 3},
	}
}
