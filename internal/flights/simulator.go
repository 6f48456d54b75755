package flights

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"ghost-flight/internal/models"
)

const kmPerDegree = 111.32

var simCallsignPrefixes = []string{"AMX", "VOI", "VIV", "AAL", "UAL", "FDX", "DAL", "UPS", "AIJ", "SLI"}

// Simulator generates a deterministic set of flights around a center point
// and moves them along their headings on every Fetch.
type Simulator struct {
	mu      sync.Mutex
	flights []models.Flight
	step    time.Duration
	bbox    BoundingBox
}

// SimulatorConfig configures a Simulator
type SimulatorConfig struct {
	Flights int
	Seed    int64
	Center  models.Coordinates
	// SpreadDeg is the half-width of the square the flights start in
	SpreadDeg float64
	Step      time.Duration
	BBox      BoundingBox
}

// NewSimulator creates a simulator. The first two flights start close to
// each other so a fresh simulator always produces at least one conflict.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.Center == (models.Coordinates{}) {
		cfg.Center = models.Coordinates{Lat: 19.4361, Lon: -99.0719}
	}
	if cfg.SpreadDeg <= 0 {
		cfg.SpreadDeg = 0.5
	}
	if cfg.Step <= 0 {
		cfg.Step = 15 * time.Second
	}
	if cfg.BBox == (BoundingBox{}) {
		cfg.BBox = MexicoBoundingBox
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	flights := make([]models.Flight, cfg.Flights)
	for i := range flights {
		lat := cfg.Center.Lat + (rng.Float64()*2-1)*cfg.SpreadDeg
		lon := cfg.Center.Lon + (rng.Float64()*2-1)*cfg.SpreadDeg
		alt := 2000 + rng.Float64()*9000
		if i == 1 {
			lat = *flights[0].Latitude + 0.01
			lon = *flights[0].Longitude + 0.01
			alt = *flights[0].Altitude + 50
		}
		callsign := fmt.Sprintf("%s%d", simCallsignPrefixes[rng.Intn(len(simCallsignPrefixes))], 100+rng.Intn(900))

		flights[i] = models.Flight{
			ICAO24:        fmt.Sprintf("%06x", rng.Intn(0xffffff)),
			Callsign:      callsign,
			OriginCountry: "Mexico",
			Latitude:      models.Float64(lat),
			Longitude:     models.Float64(lon),
			Altitude:      models.Float64(alt),
			Velocity:      models.Float64(120 + rng.Float64()*130),
			Heading:       models.Float64(rng.Float64() * 360),
			Type:          Classify(callsign),
		}
	}

	log.Printf("[SIM] Simulator ready: flights=%d seed=%d step=%v", cfg.Flights, cfg.Seed, cfg.Step)
	return &Simulator{flights: flights, step: cfg.Step, bbox: cfg.BBox}
}

// Fetch returns the current positions and then advances every flight by one step
func (s *Simulator) Fetch(ctx context.Context) ([]models.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Flight, len(s.flights))
	for i, f := range s.flights {
		snapshot[i] = copyFlight(f)
	}

	for i := range s.flights {
		s.advance(&s.flights[i])
	}

	return snapshot, nil
}

// advance moves a flight along its heading; flights leaving the box turn around
func (s *Simulator) advance(f *models.Flight) {
	distKm := *f.Velocity * s.step.Seconds() / 1000
	heading := *f.Heading * math.Pi / 180

	lat := *f.Latitude + distKm*math.Cos(heading)/kmPerDegree
	lon := *f.Longitude + distKm*math.Sin(heading)/(kmPerDegree*math.Cos(*f.Latitude*math.Pi/180))

	if !s.bbox.Contains(models.Coordinates{Lat: lat, Lon: lon}) {
		*f.Heading = math.Mod(*f.Heading+180, 360)
		return
	}

	*f.Latitude = lat
	*f.Longitude = lon
}

func copyFlight(f models.Flight) models.Flight {
	out := f
	out.Latitude = copyFloat(f.Latitude)
	out.Longitude = copyFloat(f.Longitude)
	out.Altitude = copyFloat(f.Altitude)
	out.Velocity = copyFloat(f.Velocity)
	out.Heading = copyFloat(f.Heading)
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
