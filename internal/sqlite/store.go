package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"ghost-flight/internal/database"

	_ "modernc.org/sqlite"
)

const (
	DefaultDBFileName = "ghost-flight.db"
	schemaVersion     = 2
)

// Store is a SQLite-based registry of restricted zones and airports
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	zoneRepo    database.ZoneRepository
	airportRepo database.AirportRepository
}

// New creates a new SQLite store at the specified path
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Printf("[DB] Opening SQLite database at: %s", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.zoneRepo = &zoneRepository{store: store}
	store.airportRepo = &airportRepository{store: store}

	return store, nil
}

// GetDBPath returns the current database file path
func (s *Store) GetDBPath() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist, create everything
		return s.createSchema()
	}

	if version < schemaVersion {
		return s.runMigrations(version)
	}

	return nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (1);

	CREATE TABLE IF NOT EXISTS restricted_zones (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		radius_km REAL NOT NULL CHECK (radius_km > 0)
	);

	CREATE TABLE IF NOT EXISTS airports (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.runMigrations(1); err != nil {
		return err
	}

	log.Printf("[DB] SQLite schema initialized (version %d)", schemaVersion)
	return nil
}

func (s *Store) runMigrations(fromVersion int) error {
	if fromVersion < 2 {
		if err := s.seedDefaults(); err != nil {
			return fmt.Errorf("failed to seed defaults: %w", err)
		}
	}

	_, err := s.db.Exec("UPDATE schema_version SET version = ?", schemaVersion)
	return err
}

func (s *Store) seedDefaults() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range DefaultAirports {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO airports (code, name, lat, lon) VALUES (?, ?, ?, ?)`,
			a.Code, a.Name, a.Lat, a.Lon,
		); err != nil {
			return fmt.Errorf("airport %s: %w", a.Code, err)
		}
	}

	for _, z := range DefaultZones {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO restricted_zones (name, lat, lon, radius_km) VALUES (?, ?, ?, ?)`,
			z.Name, z.Lat, z.Lon, z.RadiusKm,
		); err != nil {
			return fmt.Errorf("zone %s: %w", z.Name, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Zones() database.ZoneRepository       { return s.zoneRepo }
func (s *Store) Airports() database.AirportRepository { return s.airportRepo }
