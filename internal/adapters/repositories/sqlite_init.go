package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
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
		amount REAL NOT NULL DEFAULT 0,
		lat REAL,
		lon REAL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL
    );
	`

	return execSchema(ctx, db, []string{createStopsQuery, createGeocodeCacheQuery})
}

func execSchema(ctx context.Context, db *sql.DB, statements []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the SQLite database with stop data from a JSON file.
// Re-seeding keeps coordinates resolved since the last run when the seed has none.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	rows, err := loadSeed(jsonPath)
	if err != nil {
		return err
	}

	return insertSeed(ctx, db, rows, `
	INSERT INTO stops (
		stop_id,
		customer_name,
		address,
		city,
		items,
		amount,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (stop_id) DO UPDATE
	SET customer_name = excluded.customer_name,
		address = excluded.address,
		city = excluded.city,
		items = excluded.items,
		amount = excluded.amount,
		lat = COALESCE(excluded.lat, stops.lat),
		lon = COALESCE(excluded.lon, stops.lon);
	`)
}

func insertSeed(ctx context.Context, db *sql.DB, rows []StopSeed, query string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		items, err := s.itemsJSON()
		if err != nil {
			return fmt.Errorf("seed stops: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, s.StopID, s.CustomerName, s.Address, s.City, items, s.Amount, s.Lat, s.Lon); err != nil {
			return fmt.Errorf("seed stops: insert stop_id=%q: %w", s.StopID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stops: commit tx: %w", err)
	}

	return nil
}
