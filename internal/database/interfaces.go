package database

import (
	"context"

	"ghost-flight/internal/models"
)

// DataStore is the interface for the configuration registry
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Zones() ZoneRepository
	Airports() AirportRepository
}

// ZoneRepository handles restricted zone configuration
type ZoneRepository interface {
	List(ctx context.Context) ([]models.RestrictedZone, error)
	GetByName(ctx context.Context, name string) (*models.RestrictedZone, error)
	Create(ctx context.Context, z *models.RestrictedZone) (*models.RestrictedZone, error)
	Delete(ctx context.Context, id int64) error
}

// AirportRepository resolves ICAO codes to coordinates
type AirportRepository interface {
	List(ctx context.Context) ([]models.Airport, error)
	GetByCode(ctx context.Context, code string) (*models.Airport, error)
	Upsert(ctx context.Context, a *models.Airport) error
}
