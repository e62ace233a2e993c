package repositories

import (
	"context"
	"database/sql"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the StopRepository port (pgx stdlib driver).
type SQLStopRepository struct{ DB *sql.DB }

func NewSQLStopRepository(db *sql.DB) *SQLStopRepository {
	return &SQLStopRepository{DB: db}
}

func (s *SQLStopRepository) ListStops(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "repo.sql.ListStops")(&err)

	if s.DB == nil {
		return nil, errors.New("sql stop repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT`+stopColumns+`
	FROM stops
	ORDER BY stop_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops, err := scanStops(rows)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}
	return stops, nil
}

func (s *SQLStopRepository) GetStops(ctx context.Context, ids []string) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "repo.sql.GetStops")(&err)

	if s.DB == nil {
		return nil, errors.New("sql stop repository: DB is nil")
	}

	if len(ids) == 0 {
		return []domain.Stop{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT`+stopColumns+`
	FROM stops
	WHERE stop_id = ANY($1::text[]);
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("get stops: query stops table: %w", err)
	}
	defer rows.Close()

	found, err := scanStops(rows)
	if err != nil {
		return nil, fmt.Errorf("get stops: %w", err)
	}

	return orderByRequest(ids, found)
}

// UpdateLocation stores a resolved coordinate for a stop.
func (s *SQLStopRepository) UpdateLocation(ctx context.Context, id string, p domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("sql stop repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE stops SET lat = $1, lon = $2 WHERE stop_id = $3;`, p.Lat, p.Lon, id)
	if err != nil {
		return fmt.Errorf("update stop location: stop_id=%q: %w", id, err)
	}
	return expectOneRow(res, id)
}
