package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ghost-flight/internal/conflict"
	"ghost-flight/internal/flights"
	"ghost-flight/internal/geocoding"
	"ghost-flight/internal/handlers"
	"ghost-flight/internal/logging"
	"ghost-flight/internal/metrics"
	"ghost-flight/internal/monitor"
	"ghost-flight/internal/routing"
	"ghost-flight/internal/server"
	"ghost-flight/internal/sqlite"
	"ghost-flight/internal/stream"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logCloser.Close()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Zones are read once; edits take effect on restart.
	zones, err := store.Zones().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load restricted zones: %w", err)
	}
	log.Printf("[CONFLICT] Loaded restricted zones: count=%d", len(zones))

	collector, err := metrics.New(nil)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	hub := stream.NewHub()

	mon := monitor.New(
		newSource(cfg),
		conflict.NewDetector(zones),
		monitor.WithInterval(cfg.CollectInterval),
		monitor.WithMetrics(collector),
		monitor.WithPublisher(hub),
	)

	geocoder := geocoding.NewCachedGeocoder(
		geocoding.NewNominatimGeocoder(cfg.GeocoderURL, cfg.GeocoderCountry),
		256, 24*time.Hour,
	)

	handler := &handlers.Handler{
		DB:        store,
		Geocoder:  geocoder,
		Optimizer: routing.NewTwoOpt(),
		Monitor:   mon,
		History:   flights.NewOpenSkyHistory(cfg.OpenSkyURL),
		Metrics:   collector,
	}
	srv := server.New(server.Config{
		Addr:    cfg.Addr,
		Metrics: collector.Handler(),
		Alerts:  hub,
	}, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx, 30*time.Second) })
	g.Go(func() error { return mon.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		hub.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Println("Server stopped")
	return nil
}

func newSource(cfg *Config) flights.Source {
	if cfg.FeedMode == FeedOpenSky {
		log.Printf("[FEED] Using OpenSky feed: url=%s bbox=%+v", cfg.OpenSkyURL, cfg.BBox)
		return flights.NewOpenSkySource(cfg.OpenSkyURL, cfg.BBox)
	}

	log.Printf("[SIM] Using simulated feed: flights=%d seed=%d", cfg.SimFlights, cfg.SimSeed)
	return flights.NewSimulator(flights.SimulatorConfig{
		Flights: cfg.SimFlights,
		Seed:    cfg.SimSeed,
		Step:    cfg.CollectInterval,
		BBox:    cfg.BBox,
	})
}
