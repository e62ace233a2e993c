package api

import (
	"context"
	"delivery-route-planner/internal/config"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/services"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyRepo struct{}

func (emptyRepo) ListStops(ctx context.Context) ([]domain.Stop, error) { return nil, nil }

func (emptyRepo) GetStops(ctx context.Context, ids []string) ([]domain.Stop, error) {
	return nil, &domain.UnknownStopError{StopIDs: ids}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(Deps{
		Repo: emptyRepo{},
		Config: config.Config{
			Planner: services.DefaultPlannerOptions(),
			Depots:  []config.Depot{{Name: "hub", Location: domain.GeoPoint{Lat: 33.45, Lon: -112.07}}},
		},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouterRoutesAndRequestID(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/stops", "/depots"} {
		res, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.NotEmpty(t, res.Header.Get("X-Request-ID"), path)
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "abc-123", res.Header.Get("X-Request-ID"))
}

func TestRouterPlanEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	body := `{"depot_name": "hub", "stops": [{"stop_id": "s1", "lat": 33.42, "lon": -111.83}]}`
	res, err := http.Post(srv.URL+"/plans", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRouterExposesMetrics(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	res.Body.Close()

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, res.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "planner_http_requests_total")
}
