package repositories

import (
	"context"
	"database/sql"
	"delivery-route-planner/internal/domain"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed implementation of the StopRepository port.
type SqliteStopRepository struct{ DB *sql.DB }

func NewSqliteStopRepository(db *sql.DB) *SqliteStopRepository {
	return &SqliteStopRepository{DB: db}
}

// Return all stops stored in the database.
func (s *SqliteStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	query := `SELECT` + stopColumns + `
	FROM stops
	ORDER BY stop_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
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

// Return the requested stops in request order.
func (s *SqliteStopRepository) GetStops(ctx context.Context, ids []string) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	if len(ids) == 0 {
		return []domain.Stop{}, nil
	}

	ph := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		ph = append(ph, "?")
		args = append(args, id)
	}

	// Only the placeholder structure is interpolated; all values remain parameterized.
	query := fmt.Sprintf(`SELECT`+stopColumns+`
	FROM stops
	WHERE stop_id IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, query, args...)
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
func (s *SqliteStopRepository) UpdateLocation(ctx context.Context, id string, p domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("sqlite stop repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE stops SET lat = ?, lon = ? WHERE stop_id = ?;`, p.Lat, p.Lon, id)
	if err != nil {
		return fmt.Errorf("update stop location: stop_id=%q: %w", id, err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stop location: rows affected: %w", err)
	}
	if n == 0 {
		return &domain.UnknownStopError{StopIDs: []string{id}}
	}
	return nil
}
