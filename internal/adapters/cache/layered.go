package cache

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/ports"
	"fmt"
	"log"
)

// Layered reads through a fast cache (e.g. Redis) to a durable one (e.g. SQL).
// Hits found only in the durable layer are copied back into the fast layer.
// Writes go to both layers; a fast-layer write failure is logged, not returned.
type Layered struct {
	Fast    ports.GeocodeCache
	Durable ports.GeocodeCache
}

func NewLayered(fast, durable ports.GeocodeCache) *Layered {
	return &Layered{Fast: fast, Durable: durable}
}

func (l *Layered) GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	out, err := l.Fast.GetMany(ctx, addresses)
	if err != nil {
		log.Printf("layered geocode cache: fast layer read failed: %v", err)
	}
	if out == nil {
		out = map[string]domain.GeoPoint{}
	}

	misses := make([]string, 0, len(addresses))
	for _, a := range uniqueKeys(addresses) {
		if _, ok := out[a]; !ok {
			misses = append(misses, a)
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	durable, err := l.Durable.GetMany(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("layered geocode cache: durable read: %w", err)
	}

	if len(durable) > 0 {
		if err := l.Fast.PutMany(ctx, durable); err != nil {
			log.Printf("layered geocode cache: back-fill failed: %v", err)
		}
	}

	for k, v := range durable {
		out[k] = v
	}
	return out, nil
}

func (l *Layered) PutMany(ctx context.Context, results map[string]domain.GeoPoint) error {
	if err := l.Durable.PutMany(ctx, results); err != nil {
		return fmt.Errorf("layered geocode cache: durable write: %w", err)
	}
	if err := l.Fast.PutMany(ctx, results); err != nil {
		log.Printf("layered geocode cache: fast layer write failed: %v", err)
	}
	return nil
}
