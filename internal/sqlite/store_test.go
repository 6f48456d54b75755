package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghost-flight/internal/database"
	"ghost-flight/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "nested", DefaultDBFileName))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestNew_SeedsDefaults(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.HealthCheck(ctx))

	airports, err := store.Airports().List(ctx)
	require.NoError(t, err)
	assert.Len(t, airports, len(DefaultAirports))

	zones, err := store.Zones().List(ctx)
	require.NoError(t, err)
	require.Len(t, zones, len(DefaultZones))
	assert.Equal(t, DefaultZones[0].Name, zones[0].Name)
	assert.NotZero(t, zones[0].ID)
}

func TestNew_ReopenDoesNotReseed(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDBFileName)
	ctx := context.Background()

	store, err := New(path)
	require.NoError(t, err)
	_, err = store.Zones().Create(ctx, &models.RestrictedZone{Name: "Temporal", Lat: 20, Lon: -100, RadiusKm: 1})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	zones, err := reopened.Zones().List(ctx)
	require.NoError(t, err)
	assert.Len(t, zones, len(DefaultZones)+1)
	assert.Equal(t, path, reopened.GetDBPath())
}

func TestHealthCheck_AfterClose(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), DefaultDBFileName))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.HealthCheck(context.Background()))
}

func TestAirports_GetByCode(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	a, err := store.Airports().GetByCode(ctx, " mmmx ")
	require.NoError(t, err)
	assert.Equal(t, "MMMX", a.Code)
	assert.InDelta(t, 19.4361, a.Lat, 1e-9)
	assert.InDelta(t, -99.0719, a.Lon, 1e-9)

	_, err = store.Airports().GetByCode(ctx, "ZZZZ")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestAirports_Upsert(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	repo := store.Airports()

	a := &models.Airport{Code: "mmtj", Name: "Tijuana", Lat: 32.5411, Lon: -116.97}
	require.NoError(t, repo.Upsert(ctx, a))
	assert.Equal(t, "MMTJ", a.Code)

	a.Name = "Tijuana Intl"
	require.NoError(t, repo.Upsert(ctx, a))

	got, err := repo.GetByCode(ctx, "MMTJ")
	require.NoError(t, err)
	assert.Equal(t, "Tijuana Intl", got.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultAirports)+1)

	assert.Error(t, repo.Upsert(ctx, &models.Airport{Code: "  "}))
}

func TestZones_CreateGetDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	repo := store.Zones()

	created, err := repo.Create(ctx, &models.RestrictedZone{Name: "Zona de prueba", Lat: 19.5, Lon: -99.1, RadiusKm: 7.5})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByName(ctx, "Zona de prueba")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 7.5, got.RadiusKm)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByName(ctx, "Zona de prueba")
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), database.ErrNotFound)
}

func TestZones_CreateValidation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	repo := store.Zones()

	_, err := repo.Create(ctx, &models.RestrictedZone{Name: "", RadiusKm: 1})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &models.RestrictedZone{Name: "Sin radio", RadiusKm: 0})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &models.RestrictedZone{Name: DefaultZones[0].Name, RadiusKm: 2})
	assert.Error(t, err, "duplicate names are rejected")
}
