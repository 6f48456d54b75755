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

type airportRepository struct {
	store *Store
}

func (r *airportRepository) List(ctx context.Context) ([]models.Airport, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx, `SELECT code, name, lat, lon FROM airports ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	var airports []models.Airport
	for rows.Next() {
		var a models.Airport
		if err := rows.Scan(&a.Code, &a.Name, &a.Lat, &a.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airports: %w", err)
	}

	return airports, nil
}

// GetByCode looks up an airport by ICAO code, case-insensitively.
func (r *airportRepository) GetByCode(ctx context.Context, code string) (*models.Airport, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var a models.Airport
	err := r.store.db.QueryRowContext(ctx,
		`SELECT code, name, lat, lon FROM airports WHERE code = ?`,
		normalizeCode(code),
	).Scan(&a.Code, &a.Name, &a.Lat, &a.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get airport: %w", err)
	}

	return &a, nil
}

func (r *airportRepository) Upsert(ctx context.Context, a *models.Airport) error {
	code := normalizeCode(a.Code)
	if code == "" {
		return fmt.Errorf("airport code is required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `
		INSERT INTO airports (code, name, lat, lon) VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, lat = excluded.lat, lon = excluded.lon
	`
	if _, err := r.store.db.ExecContext(ctx, query, code, a.Name, a.Lat, a.Lon); err != nil {
		return fmt.Errorf("failed to upsert airport: %w", err)
	}

	a.Code = code
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
