package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghost-flight/internal/flights"
	"ghost-flight/internal/geocoding"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"SERVER_ADDR", "DB_PATH", "COLLECT_INTERVAL", "FEED_MODE", "OPENSKY_URL",
		"LAT_MIN", "LAT_MAX", "LON_MIN", "LON_MAX", "SIM_FLIGHTS", "SIM_SEED",
		"LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "GEOCODER_URL", "GEOCODER_COUNTRY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, filepath.Join(home, ".ghost-flight", "data.db"), cfg.DBPath)
	assert.DirExists(t, filepath.Join(home, ".ghost-flight"))
	assert.Equal(t, 15*time.Second, cfg.CollectInterval)
	assert.Equal(t, FeedSimulator, cfg.FeedMode)
	assert.Equal(t, flights.DefaultOpenSkyURL, cfg.OpenSkyURL)
	assert.Equal(t, flights.MexicoBoundingBox, cfg.BBox)
	assert.Equal(t, geocoding.DefaultNominatimURL, cfg.GeocoderURL)
	assert.Equal(t, "mx", cfg.GeocoderCountry)
	assert.Equal(t, 12, cfg.SimFlights)
	assert.Equal(t, int64(1), cfg.SimSeed)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 32, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("COLLECT_INTERVAL", "5")
	t.Setenv("FEED_MODE", "OpenSky")
	t.Setenv("LAT_MIN", "18.5")
	t.Setenv("LON_MAX", "-95")
	t.Setenv("LOG_FILE", "/tmp/ghost.log")
	t.Setenv("DB_PATH", "/var/lib/ghost/flights.db")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/ghost/flights.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.CollectInterval)
	assert.Equal(t, FeedOpenSky, cfg.FeedMode)
	assert.Equal(t, 18.5, cfg.BBox.LatMin)
	assert.Equal(t, -95.0, cfg.BBox.LonMax)
	assert.Equal(t, "/tmp/ghost.log", cfg.Log.File)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"COLLECT_INTERVAL", "soon"},
		{"COLLECT_INTERVAL", "0"},
		{"FEED_MODE", "kafka"},
		{"LAT_MIN", "north"},
		{"LAT_MIN", "40"},
		{"SIM_FLIGHTS", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewSource(t *testing.T) {
	clearEnv(t)
	cfg, err := loadConfig()
	require.NoError(t, err)

	_, ok := newSource(cfg).(*flights.Simulator)
	assert.True(t, ok)

	cfg.FeedMode = FeedOpenSky
	_, ok = newSource(cfg).(*flights.Simulator)
	assert.False(t, ok)
}
