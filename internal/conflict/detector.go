// Package conflict scans flight snapshots for aircraft pairs that are too
// close to each other and for aircraft inside restricted zones.
//
// A Detector is created once. The caller replaces its flight snapshot every
// polling tick; the zone list is fixed at construction; the set of known
// conflict identifiers only grows, so a conflict between the same two
// identifiers is reported once for the lifetime of the Detector.
package conflict

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"ghost-flight/internal/geo"
	"ghost-flight/internal/models"
)

const (
	// PairThresholdKm is the combined separation below which two flights conflict
	PairThresholdKm = 5.0
	// PairCriticalKm is the combined separation below which a pair conflict is critical
	PairCriticalKm = 2.0
	// verticalScale converts an altitude difference to the km-like unit used
	// in the combined separation
	verticalScale = 1000.0
)

// Detector holds the flight snapshot, restricted zones and known conflicts.
// All methods are safe for concurrent use.
type Detector struct {
	mu      sync.Mutex
	flights []models.Flight
	zones   []models.RestrictedZone
	known   map[string]struct{}

	now   func() time.Time
	newID func() string
}

// Option configures a Detector
type Option func(*Detector)

// WithClock overrides the time source used for alert timestamps
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		d.now = now
	}
}

// WithIDGenerator overrides how alert IDs are generated
func WithIDGenerator(newID func() string) Option {
	return func(d *Detector) {
		d.newID = newID
	}
}

// NewDetector creates a detector for a fixed set of restricted zones
func NewDetector(zones []models.RestrictedZone, opts ...Option) *Detector {
	d := &Detector{
		zones: append([]models.RestrictedZone(nil), zones...),
		known: make(map[string]struct{}),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetFlights replaces the current flight snapshot
func (d *Detector) SetFlights(flights []models.Flight) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flights = flights
}

// Zones returns a copy of the configured zones
func (d *Detector) Zones() []models.RestrictedZone {
	return append([]models.RestrictedZone(nil), d.zones...)
}

// KnownCount returns how many distinct conflicts have been reported
func (d *Detector) KnownCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.known)
}

func (d *Detector) isKnown(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.known[id]
	return ok
}

// Detect scans the current snapshot and returns conflicts not reported before,
// pair conflicts first, then zone incursions.
func (d *Detector) Detect() ([]models.ConflictEvent, []models.Alert) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detectLocked()
}

// Tick replaces the snapshot and scans it under a single lock
func (d *Detector) Tick(flights []models.Flight) ([]models.ConflictEvent, []models.Alert) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flights = flights
	return d.detectLocked()
}

func (d *Detector) detectLocked() ([]models.ConflictEvent, []models.Alert) {
	conflicts := []models.ConflictEvent{}
	alerts := []models.Alert{}

	d.scanPairs(&conflicts, &alerts)
	d.scanZones(&conflicts, &alerts)

	log.Printf("[CONFLICT] Scan complete: flights=%d zones=%d new_conflicts=%d known=%d",
		len(d.flights), len(d.zones), len(conflicts), len(d.known))

	return conflicts, alerts
}

func (d *Detector) scanPairs(conflicts *[]models.ConflictEvent, alerts *[]models.Alert) {
	for i := 0; i < len(d.flights); i++ {
		fi := &d.flights[i]
		pi, ok := fi.GetCoords()
		if !ok {
			continue
		}

		for j := i + 1; j < len(d.flights); j++ {
			fj := &d.flights[j]
			pj, ok := fj.GetCoords()
			if !ok {
				continue
			}

			dist := Separation(pi, fi.AltitudeOrDefault(), pj, fj.AltitudeOrDefault())
			// NaN separations fail both comparisons and are skipped
			if !(dist < PairThresholdKm) {
				continue
			}

			idA, idB := fi.Identifier(i), fj.Identifier(j)
			key := PairKey(idA, idB)
			if !d.remember(key) {
				continue
			}

			severity := models.SeverityHigh
			if dist < PairCriticalKm {
				severity = models.SeverityCritical
			}

			event := models.ConflictEvent{
				ID:           key,
				Kind:         models.ConflictKindPair,
				Participants: []string{idA, idB},
				DistanceKm:   dist,
				Severity:     severity,
			}
			*conflicts = append(*conflicts, event)
			*alerts = append(*alerts, d.newAlert(event,
				fmt.Sprintf("Alerta de proximidad: %s y %s a %.2f km", fi.DisplayName(i), fj.DisplayName(j), dist)))
		}
	}
}

func (d *Detector) scanZones(conflicts *[]models.ConflictEvent, alerts *[]models.Alert) {
	for i := range d.flights {
		f := &d.flights[i]
		pos, ok := f.GetCoords()
		if !ok {
			continue
		}

		for z := range d.zones {
			zone := &d.zones[z]
			dist := geo.Distance(pos, zone.GetCoords())
			if !(dist < zone.RadiusKm) {
				continue
			}

			id := f.Identifier(i)
			key := ZoneKey(id, zone.Name)
			if !d.remember(key) {
				continue
			}

			severity := models.SeverityHigh
			if dist < zone.RadiusKm/2 {
				severity = models.SeverityCritical
			}

			event := models.ConflictEvent{
				ID:           key,
				Kind:         models.ConflictKindZone,
				Participants: []string{id},
				Zone:         zone.Name,
				DistanceKm:   dist,
				Severity:     severity,
			}
			*conflicts = append(*conflicts, event)
			*alerts = append(*alerts, d.newAlert(event,
				fmt.Sprintf("Incursión en zona restringida: %s dentro de %s (%.2f km del centro)", f.DisplayName(i), zone.Name, dist)))
		}
	}
}

// remember records key and reports whether it was new
func (d *Detector) remember(key string) bool {
	if _, ok := d.known[key]; ok {
		return false
	}
	d.known[key] = struct{}{}
	return true
}

func (d *Detector) newAlert(event models.ConflictEvent, message string) models.Alert {
	return models.Alert{
		ID:           d.newID(),
		ConflictID:   event.ID,
		Kind:         event.Kind,
		Severity:     event.Severity,
		Tag:          event.Severity.Tag(),
		Message:      message,
		Participants: event.Participants,
		DistanceKm:   event.DistanceKm,
		CreatedAt:    d.now(),
	}
}

// Separation combines great-circle distance with the altitude difference
// divided by 1000, as a Euclidean norm.
func Separation(a models.Coordinates, altA float64, b models.Coordinates, altB float64) float64 {
	horizontal := geo.Distance(a, b)
	vertical := math.Abs(altA-altB) / verticalScale
	return math.Sqrt(horizontal*horizontal + vertical*vertical)
}

// PairKey is the known-conflict identifier for two flights, lower snapshot index first
func PairKey(a, b string) string {
	return "pair:" + a + "-" + b
}

// ZoneKey is the known-conflict identifier for a flight inside a zone
func ZoneKey(flightID, zoneName string) string {
	return "zone:" + flightID + "@" + zoneName
}
