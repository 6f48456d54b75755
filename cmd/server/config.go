package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ghost-flight/internal/database"
	"ghost-flight/internal/flights"
	"ghost-flight/internal/geocoding"
	"ghost-flight/internal/logging"
)

const (
	FeedSimulator = "simulator"
	FeedOpenSky   = "opensky"
)

// Config is the process configuration, read from the environment
type Config struct {
	Addr            string
	DBPath          string
	CollectInterval time.Duration
	FeedMode        string
	OpenSkyURL      string
	GeocoderURL     string
	GeocoderCountry string
	BBox            flights.BoundingBox
	SimFlights      int
	SimSeed         int64
	Log             logging.Config
}

func loadConfig() (*Config, error) {
	interval, err := getEnvInt("COLLECT_INTERVAL", 15)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, fmt.Errorf("COLLECT_INTERVAL must be positive, got %d", interval)
	}

	simFlights, err := getEnvInt("SIM_FLIGHTS", 12)
	if err != nil {
		return nil, err
	}
	if simFlights < 0 {
		return nil, fmt.Errorf("SIM_FLIGHTS must not be negative, got %d", simFlights)
	}
	simSeed, err := getEnvInt("SIM_SEED", 1)
	if err != nil {
		return nil, err
	}
	maxSize, err := getEnvInt("LOG_MAX_SIZE_MB", 32)
	if err != nil {
		return nil, err
	}
	maxBackups, err := getEnvInt("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}

	bbox := flights.MexicoBoundingBox
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"LAT_MIN", &bbox.LatMin},
		{"LAT_MAX", &bbox.LatMax},
		{"LON_MIN", &bbox.LonMin},
		{"LON_MAX", &bbox.LonMax},
	} {
		if *f.dst, err = getEnvFloat(f.key, *f.dst); err != nil {
			return nil, err
		}
	}
	if bbox.LatMin >= bbox.LatMax || bbox.LonMin >= bbox.LonMax {
		return nil, fmt.Errorf("invalid bounding box: %+v", bbox)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		if dbPath, err = database.GetDefaultDBPath(); err != nil {
			return nil, fmt.Errorf("failed to resolve default database path: %w", err)
		}
	}

	mode := strings.ToLower(getEnv("FEED_MODE", FeedSimulator))
	if mode != FeedSimulator && mode != FeedOpenSky {
		return nil, fmt.Errorf("FEED_MODE must be %q or %q, got %q", FeedSimulator, FeedOpenSky, mode)
	}

	return &Config{
		Addr:            getEnv("SERVER_ADDR", "127.0.0.1:8080"),
		DBPath:          dbPath,
		CollectInterval: time.Duration(interval) * time.Second,
		FeedMode:        mode,
		OpenSkyURL:      getEnv("OPENSKY_URL", flights.DefaultOpenSkyURL),
		GeocoderURL:     getEnv("GEOCODER_URL", geocoding.DefaultNominatimURL),
		GeocoderCountry: getEnv("GEOCODER_COUNTRY", "mx"),
		BBox:            bbox,
		SimFlights:      simFlights,
		SimSeed:         int64(simSeed),
		Log: logging.Config{
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  maxSize,
			MaxBackups: maxBackups,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
