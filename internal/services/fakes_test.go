package services

import (
	"context"
	"delivery-route-planner/internal/domain"
	"sync"
)

// memoryStopRepository is an in-memory ports.StopRepository for service tests.
type memoryStopRepository struct {
	mu      sync.Mutex
	stops   []domain.Stop
	updates map[string]domain.GeoPoint
}

func newMemoryStopRepository(stops ...domain.Stop) *memoryStopRepository {
	return &memoryStopRepository{stops: stops, updates: map[string]domain.GeoPoint{}}
}

func (r *memoryStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Stop, len(r.stops))
	copy(out, r.stops)
	return out, nil
}

func (r *memoryStopRepository) GetStops(ctx context.Context, ids []string) ([]domain.Stop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := map[string]domain.Stop{}
	for _, s := range r.stops {
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

func (r *memoryStopRepository) UpdateLocation(ctx context.Context, id string, p domain.GeoPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates[id] = p
	return nil
}
