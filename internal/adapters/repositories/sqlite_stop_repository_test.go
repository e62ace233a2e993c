package repositories

import (
	"context"
	"database/sql"
	"delivery-route-planner/internal/domain"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const seedJSON = `[
	{"stop_id": "S2", "customer_name": "Bea", "address": "2 Oak Ave", "city": "Tempe", "items": ["milk"], "amount": 7.5, "lat": 33.42, "lon": -111.94},
	{"stop_id": "S1", "customer_name": "Ada", "address": "1 Main St", "city": "Phoenix", "items": ["bread", "eggs"], "amount": 12.25, "lat": 33.45, "lon": -112.07},
	{"stop_id": "S3", "customer_name": "Cy", "address": "3 Elm Rd", "city": "Mesa"}
]`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(context.Background(), db))
	return db
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stops.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func seededRepo(t *testing.T) *SqliteStopRepository {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, SeedFromJSON(context.Background(), db, writeSeed(t, seedJSON)))
	return NewSqliteStopRepository(db)
}

func TestSqliteStopRepositoryListStops(t *testing.T) {
	repo := seededRepo(t)

	stops, err := repo.ListStops(context.Background())
	require.NoError(t, err)
	require.Len(t, stops, 3)

	require.Equal(t, "S1", stops[0].ID)
	require.Equal(t, "Ada", stops[0].Payload.CustomerName)
	require.Equal(t, []string{"bread", "eggs"}, stops[0].Payload.Items)
	require.InDelta(t, 12.25, stops[0].Payload.Amount, 1e-9)
	require.NotNil(t, stops[0].Location)
	require.Equal(t, domain.GeoPoint{Lat: 33.45, Lon: -112.07}, *stops[0].Location)

	require.Equal(t, "S3", stops[2].ID)
	require.Nil(t, stops[2].Location, "stop without coordinates must be unresolved")
	require.Empty(t, stops[2].Payload.Items)
}

func TestSqliteStopRepositoryGetStopsKeepsRequestOrder(t *testing.T) {
	repo := seededRepo(t)

	stops, err := repo.GetStops(context.Background(), []string{"S3", "S1"})
	require.NoError(t, err)
	require.Len(t, stops, 2)
	require.Equal(t, "S3", stops[0].ID)
	require.Equal(t, "S1", stops[1].ID)
}

func TestSqliteStopRepositoryGetStopsUnknown(t *testing.T) {
	repo := seededRepo(t)

	_, err := repo.GetStops(context.Background(), []string{"S1", "nope"})
	var unknown *domain.UnknownStopError
	require.True(t, errors.As(err, &unknown), "err = %v", err)
	require.Equal(t, []string{"nope"}, unknown.StopIDs)
}

func TestSqliteStopRepositoryUpdateLocation(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateLocation(ctx, "S3", domain.GeoPoint{Lat: 33.41, Lon: -111.83}))

	stops, err := repo.GetStops(ctx, []string{"S3"})
	require.NoError(t, err)
	require.NotNil(t, stops[0].Location)
	require.Equal(t, domain.GeoPoint{Lat: 33.41, Lon: -111.83}, *stops[0].Location)

	err = repo.UpdateLocation(ctx, "missing", domain.GeoPoint{})
	require.ErrorIs(t, err, domain.ErrUnknownStop)
}

func TestSeedFromJSONValidation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cases := map[string]string{
		"empty id":     `[{"stop_id": " "}]`,
		"duplicate id": `[{"stop_id": "A"}, {"stop_id": "A"}]`,
		"half point":   `[{"stop_id": "A", "lat": 1}]`,
		"bad json":     `{`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, SeedFromJSON(ctx, db, writeSeed(t, content)))
		})
	}

	require.Error(t, SeedFromJSON(ctx, db, filepath.Join(t.TempDir(), "missing.json")))
}

func TestSeedFromJSONIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	path := writeSeed(t, seedJSON)

	require.NoError(t, SeedFromJSON(ctx, db, path))
	require.NoError(t, SeedFromJSON(ctx, db, path))

	stops, err := NewSqliteStopRepository(db).ListStops(ctx)
	require.NoError(t, err)
	require.Len(t, stops, 3)
}

func TestSeedFromJSONKeepsResolvedLocation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	path := writeSeed(t, seedJSON)
	repo := NewSqliteStopRepository(db)

	require.NoError(t, SeedFromJSON(ctx, db, path))
	require.NoError(t, repo.UpdateLocation(ctx, "S3", domain.GeoPoint{Lat: 33.41, Lon: -111.83}))
	require.NoError(t, SeedFromJSON(ctx, db, path))

	stops, err := repo.GetStops(ctx, []string{"S3"})
	require.NoError(t, err)
	require.NotNil(t, stops[0].Location)
	require.Equal(t, domain.GeoPoint{Lat: 33.41, Lon: -111.83}, *stops[0].Location)
}

func TestSeedFromJSONReportsZeroBasedIndex(t *testing.T) {
	db := openTestDB(t)

	err := SeedFromJSON(context.Background(), db, writeSeed(t, `[{"stop_id": "A"}, {"stop_id": "A"}]`))
	require.ErrorContains(t, err, "item at index 1")

	err = SeedFromJSON(context.Background(), db, writeSeed(t, `[{"stop_id": ""}]`))
	require.ErrorContains(t, err, "item at index 0")
}
