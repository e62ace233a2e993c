package repositories

import (
	"database/sql"
	"delivery-route-planner/internal/domain"
	"encoding/json"
	"fmt"
)

const stopColumns = `
		stop_id,
		customer_name,
		address,
		city,
		items,
		amount,
		lat,
		lon`

func scanStops(rows *sql.Rows) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var (
			s        domain.Stop
			items    string
			lat, lon sql.NullFloat64
		)
		err := rows.Scan(
			&s.ID,
			&s.Payload.CustomerName,
			&s.Payload.Address,
			&s.Payload.City,
			&items,
			&s.Payload.Amount,
			&lat,
			&lon,
		)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if items != "" {
			if err := json.Unmarshal([]byte(items), &s.Payload.Items); err != nil {
				return nil, fmt.Errorf("decode items for stop_id=%q: %w", s.ID, err)
			}
		}

		// A stop without both coordinates is unresolved.
		if lat.Valid && lon.Valid {
			s.Location = &domain.GeoPoint{Lat: lat.Float64, Lon: lon.Float64}
		}

		stops = append(stops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return stops, nil
}

// orderByRequest returns stops in ids order, failing on ids that were not found.
func orderByRequest(ids []string, found []domain.Stop) ([]domain.Stop, error) {
	byID := make(map[string]domain.Stop, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]domain.Stop, 0, len(ids))
	var missing []string
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, s)
	}

	if len(missing) > 0 {
		return nil, &domain.UnknownStopError{StopIDs: missing}
	}
	return out, nil
}
