package repositories

import (
	"context"
	"database/sql"
	"errors"
)

// Initialize the Postgres database schema.
func InitSQLSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		items TEXT NOT NULL DEFAULT '[]',
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		CHECK ((lat IS NULL) = (lon IS NULL))
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`

	return execSchema(ctx, db, []string{createStopsQuery, createGeocodeCacheQuery})
}

// Populate the Postgres database with stop data from a JSON file.
func SeedSQLFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	rows, err := loadSeed(jsonPath)
	if err != nil {
		return err
	}

	return insertSeed(ctx, db, rows, `
	INSERT INTO stops (stop_id, customer_name, address, city, items, amount, lat, lon)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (stop_id) DO UPDATE
	SET customer_name = EXCLUDED.customer_name,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		items = EXCLUDED.items,
		amount = EXCLUDED.amount,
		lat = COALESCE(EXCLUDED.lat, stops.lat),
		lon = COALESCE(EXCLUDED.lon, stops.lon);
	`)
}
