package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ghost-flight/internal/database"
	"ghost-flight/internal/models"
)

type zoneRepository struct {
	store *Store
}

func (r *zoneRepository) List(ctx context.Context) ([]models.RestrictedZone, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT id, name, lat, lon, radius_km FROM restricted_zones ORDER BY id`

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query restricted zones: %w", err)
	}
	defer rows.Close()

	var zones []models.RestrictedZone
	for rows.Next() {
		var z models.RestrictedZone
		if err := rows.Scan(&z.ID, &z.Name, &z.Lat, &z.Lon, &z.RadiusKm); err != nil {
			return nil, fmt.Errorf("failed to scan restricted zone: %w", err)
		}
		zones = append(zones, z)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restricted zones: %w", err)
	}

	return zones, nil
}

func (r *zoneRepository) GetByName(ctx context.Context, name string) (*models.RestrictedZone, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT id, name, lat, lon, radius_km FROM restricted_zones WHERE name = ?`

	var z models.RestrictedZone
	err := r.store.db.QueryRowContext(ctx, query, name).Scan(&z.ID, &z.Name, &z.Lat, &z.Lon, &z.RadiusKm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restricted zone: %w", err)
	}

	return &z, nil
}

func (r *zoneRepository) Create(ctx context.Context, z *models.RestrictedZone) (*models.RestrictedZone, error) {
	if strings.TrimSpace(z.Name) == "" {
		return nil, fmt.Errorf("restricted zone name is required")
	}
	if z.RadiusKm <= 0 {
		return nil, fmt.Errorf("restricted zone radius must be positive, got %g", z.RadiusKm)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `INSERT INTO restricted_zones (name, lat, lon, radius_km) VALUES (?, ?, ?, ?)`

	result, err := r.store.db.ExecContext(ctx, query, z.Name, z.Lat, z.Lon, z.RadiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to create restricted zone: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	created := *z
	created.ID = id
	return &created, nil
}

func (r *zoneRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx, `DELETE FROM restricted_zones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restricted zone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrNotFound
	}

	return nil
}
