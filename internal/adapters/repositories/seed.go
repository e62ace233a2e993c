package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type StopSeed struct {
	StopID       string   `json:"stop_id"`
	CustomerName string   `json:"customer_name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Items        []string `json:"items"`
	Amount       float64  `json:"amount"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
}

// loadSeed reads and validates stop seed data from a JSON file.
func loadSeed(jsonPath string) ([]StopSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed stops: read %q: %w", jsonPath, err)
	}

	var data []StopSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed stops: parse json: %w", err)
	}

	rows := make([]StopSeed, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	for i, item := range data {
		item.StopID = strings.TrimSpace(item.StopID)
		if item.StopID == "" {
			return nil, fmt.Errorf("seed stops: item at index %d: stop_id cannot be empty", i)
		}
		if _, ok := seen[item.StopID]; ok {
			return nil, fmt.Errorf("seed stops: item at index %d: duplicate stop_id %q", i, item.StopID)
		}
		seen[item.StopID] = struct{}{}

		if (item.Lat == nil) != (item.Lon == nil) {
			return nil, fmt.Errorf("seed stops: stop_id=%q: lat and lon must both be set or both be empty", item.StopID)
		}
		if item.Items == nil {
			item.Items = []string{}
		}
		rows = append(rows, item)
	}

	return rows, nil
}

func (s StopSeed) itemsJSON() (string, error) {
	b, err := json.Marshal(s.Items)
	if err != nil {
		return "", fmt.Errorf("encode items for stop_id=%q: %w", s.StopID, err)
	}
	return string(b), nil
}
