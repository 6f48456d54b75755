package models

import (
	"strconv"
	"strings"
	"time"
)

// DefaultAltitude is substituted for flights that report no usable altitude
const DefaultAltitude = 3000.0

// Coordinates represents a geographic point in decimal degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Flight is a single aircraft position report from a feed or the simulator.
// Latitude and Longitude are pointers because live feeds omit them for some
// aircraft; such flights are skipped by the scans.
type Flight struct {
	ICAO24        string   `json:"icao24"`
	Callsign      string   `json:"callsign"`
	OriginCountry string   `json:"origin_country,omitempty"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Altitude      *float64 `json:"altitude"`
	Velocity      *float64 `json:"velocity"`
	Heading       *float64 `json:"heading"`
	Type          string   `json:"type"`
}

// GetCoords returns the flight position and whether both coordinates are present
func (f *Flight) GetCoords() (Coordinates, bool) {
	if f.Latitude == nil || f.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *f.Latitude, Lon: *f.Longitude}, true
}

// AltitudeOrDefault returns the reported altitude, or DefaultAltitude when absent
func (f *Flight) AltitudeOrDefault() float64 {
	if f.Altitude == nil {
		return DefaultAltitude
	}
	return *f.Altitude
}

// Identifier returns the icao24, then the callsign, then the position in the
// snapshot. "N/A" is the display placeholder for a missing callsign and is
// never used as a key.
func (f *Flight) Identifier(index int) string {
	if id := strings.TrimSpace(f.ICAO24); id != "" {
		return id
	}
	if cs := strings.TrimSpace(f.Callsign); cs != "" && cs != "N/A" {
		return cs
	}
	return strconv.Itoa(index)
}

// DisplayName is used in alert messages
func (f *Flight) DisplayName(index int) string {
	if cs := strings.TrimSpace(f.Callsign); cs != "" && cs != "N/A" {
		return cs
	}
	return f.Identifier(index)
}

// RestrictedZone is a fixed circular region aircraft must stay out of
type RestrictedZone struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKm float64 `json:"radius_km"`
}

// GetCoords returns the zone center
func (z *RestrictedZone) GetCoords() Coordinates {
	return Coordinates{Lat: z.Lat, Lon: z.Lon}
}

// Airport maps an ICAO code to a position for symbolic route inputs
type Airport struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// GetCoords returns the airport position
func (a *Airport) GetCoords() Coordinates {
	return Coordinates{Lat: a.Lat, Lon: a.Lon}
}

// ConflictKind distinguishes aircraft pairs from zone incursions
type ConflictKind string

const (
	ConflictKindPair ConflictKind = "pair"
	ConflictKindZone ConflictKind = "zone"
)

// Severity of a conflict, derived from distance at detection time
type Severity string

const (
	SeverityCritical Severity = "crítica"
	SeverityHigh     Severity = "alta"
)

// Tag maps a severity to its presentation tag
func (s Severity) Tag() string {
	if s == SeverityCritical {
		return "danger"
	}
	return "warning"
}

// ConflictEvent is emitted once per newly detected conflict
type ConflictEvent struct {
	ID           string       `json:"id"`
	Kind         ConflictKind `json:"kind"`
	Participants []string     `json:"participants"`
	Zone         string       `json:"zone,omitempty"`
	DistanceKm   float64      `json:"distance_km"`
	Severity     Severity     `json:"severity"`
}

// Alert is the human-readable notification for a ConflictEvent
type Alert struct {
	ID           string       `json:"id"`
	ConflictID   string       `json:"conflict_id"`
	Kind         ConflictKind `json:"kind"`
	Severity     Severity     `json:"severity"`
	Tag          string       `json:"tag"`
	Message      string       `json:"message"`
	Participants []string     `json:"participants"`
	DistanceKm   float64      `json:"distance_km"`
	CreatedAt    time.Time    `json:"created_at"`
}

// OptimizedRoute is the result of a route optimization
type OptimizedRoute struct {
	TotalKm float64       `json:"total_km"`
	Route   []Coordinates `json:"route"`
}

// TickResult is what one monitor tick produced
type TickResult struct {
	ID        string          `json:"id"`
	At        time.Time       `json:"at"`
	Flights   []Flight        `json:"flights"`
	Conflicts []ConflictEvent `json:"conflicts"`
	Alerts    []Alert         `json:"alerts"`
}

// Float64 returns a pointer to v, for building flights in code
func Float64(v float64) *float64 {
	return &v
}
