package cache

import (
	"context"
	"delivery-route-planner/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Hour)

	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{
		"1 Main St, Phoenix": {Lat: 33.4484, Lon: -112.074},
	}))

	raw, err := mr.Get("geocode:1 Main St, Phoenix")
	require.NoError(t, err)
	require.Equal(t, "33.4484,-112.074", raw)

	got, err := c.GetMany(ctx, []string{"1 Main St, Phoenix", "unknown"})
	require.NoError(t, err)
	require.Equal(t, map[string]domain.GeoPoint{"1 Main St, Phoenix": {Lat: 33.4484, Lon: -112.074}}, got)

	mr.FastForward(2 * time.Hour)
	got, err = c.GetMany(ctx, []string{"1 Main St, Phoenix"})
	require.NoError(t, err)
	require.Empty(t, got, "entry should expire after TTL")
}

func TestRedisGeocodeCacheMalformedValue(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, 0)

	require.NoError(t, mr.Set("geocode:bad", "not-a-point"))
	_, err := c.GetMany(context.Background(), []string{"bad"})
	require.Error(t, err)
}

func TestLayeredBackfillsFastLayer(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	fast := NewRedisGeocodeCache(client, time.Hour)
	durable := NewSqliteGeocodeCache(openCacheDB(t))

	require.NoError(t, durable.PutMany(ctx, map[string]domain.GeoPoint{"A": {Lat: 1, Lon: 2}}))

	l := NewLayered(fast, durable)
	got, err := l.GetMany(ctx, []string{"A", "B"})
	require.NoError(t, err)
	require.Equal(t, map[string]domain.GeoPoint{"A": {Lat: 1, Lon: 2}}, got)

	fromFast, err := fast.GetMany(ctx, []string{"A"})
	require.NoError(t, err)
	require.Equal(t, domain.GeoPoint{Lat: 1, Lon: 2}, fromFast["A"])

	require.NoError(t, l.PutMany(ctx, map[string]domain.GeoPoint{"B": {Lat: 3, Lon: 4}}))
	fromDurable, err := durable.GetMany(ctx, []string{"B"})
	require.NoError(t, err)
	require.Equal(t, domain.GeoPoint{Lat: 3, Lon: 4}, fromDurable["B"])
}
