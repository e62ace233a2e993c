package obs

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"path"})
	OpDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_op_duration_ms",
		Help:    "Internal operation duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000},
	}, []string{"op"})
	PlansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_plans_total",
		Help: "Route plans by strategy and outcome",
	}, []string{"strategy", "outcome"})
	PlanStops = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_plan_stops",
		Help:    "Number of stops per planned route",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 200},
	})
	GeocodeCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_geocode_cache_hits_total",
		Help: "Geocode cache hits by backend",
	}, []string{"backend"})
	GeocodeCacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_geocode_cache_misses_total",
		Help: "Geocode cache misses by backend",
	}, []string{"backend"})
	GeocodeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_geocode_requests_total",
		Help: "External geocoding requests by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
	prometheus.MustRegister(OpDurationMs)
	prometheus.MustRegister(PlansTotal)
	prometheus.MustRegister(PlanStops)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(GeocodeCacheMissesTotal)
	prometheus.MustRegister(GeocodeRequestsTotal)
}
