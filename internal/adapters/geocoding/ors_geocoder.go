package geocoding

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"delivery-route-planner/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// ORSGeocoder implements ports.Geocoder using the OpenRouteService geocoding API.
//
// It coordinates:
//   - Address normalization
//   - Optional persistent geocode caching
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	country        string
	cache          ports.GeocodeCache
	maxAttempts    int
	initialBackoff time.Duration
}

type ORSOption func(*ORSGeocoder)

// WithBaseURL points the geocoder at a different ORS deployment.
func WithBaseURL(u string) ORSOption {
	return func(o *ORSGeocoder) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithCountry restricts results to an ISO country code ("" disables the boundary).
func WithCountry(code string) ORSOption {
	return func(o *ORSGeocoder) { o.country = code }
}

func WithCache(c ports.GeocodeCache) ORSOption {
	return func(o *ORSGeocoder) { o.cache = c }
}

func WithRetry(maxAttempts int, initialBackoff time.Duration) ORSOption {
	return func(o *ORSGeocoder) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		o.initialBackoff = initialBackoff
	}
}

func WithHTTPClient(c *http.Client) ORSOption {
	return func(o *ORSGeocoder) { o.session = c }
}

func NewORSGeocoder(apiKey string, opts ...ORSOption) (*ORSGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session:        &http.Client{Timeout: 10 * time.Second},
		apiKey:         apiKey,
		baseURL:        "https://api.openrouteservice.org",
		country:        "US",
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Normalize collapses whitespace so equivalent addresses share a cache key.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves addresses, consulting the cache before calling ORS.
// Result keys are the addresses exactly as passed in.
func (o *ORSGeocoder) Geocode(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	normOf := make(map[string]string, len(addresses))
	uniq := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		n := Normalize(a)
		if n == "" {
			continue
		}
		normOf[a] = n
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	if len(uniq) == 0 {
		return map[string]domain.GeoPoint{}, nil
	}

	hits := make(map[string]domain.GeoPoint)
	// Resolve coordinates via cache before calling ORS geocoding.
	if o.cache != nil {
		hits, err = o.cache.GetMany(ctx, uniq)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
	}

	misses := make([]string, 0, len(uniq))
	for _, a := range uniq {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh := make(map[string]domain.GeoPoint)
	if len(misses) > 0 {
		fresh, err = o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("retrieving coordinates: %w", err)
		}
	}

	if o.cache != nil && len(fresh) > 0 {
		if err := o.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[string]domain.GeoPoint, len(addresses))
	for orig, n := range normOf {
		if p, ok := hits[n]; ok {
			out[orig] = p
			continue
		}
		if p, ok := fresh[n]; ok {
			out[orig] = p
		}
	}

	return out, nil
}

// geocodeMany resolves normalized addresses individually using /geocode/search.
// Addresses with no result are omitted; transport and decode failures abort.
func (o *ORSGeocoder) geocodeMany(
	ctx context.Context,
	addresses []string,
) (map[string]domain.GeoPoint, error) {
	endpoint := o.baseURL + "/geocode/search"

	out := make(map[string]domain.GeoPoint, len(addresses))
	for _, a := range addresses {
		p, ok, err := o.geocodeOne(ctx, endpoint, a)
		if err != nil {
			obs.GeocodeRequestsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("geocode %q: %w", a, err)
		}
		if !ok {
			obs.GeocodeRequestsTotal.WithLabelValues("not_found").Inc()
			log.Printf("req_id=%s op=ors.geocodeMany address=%q result=none", obs.RequestID(ctx), a)
			continue
		}
		obs.GeocodeRequestsTotal.WithLabelValues("ok").Inc()
		out[a] = p
	}

	return out, nil
}

func (o *ORSGeocoder) geocodeOne(ctx context.Context, endpoint, address string) (domain.GeoPoint, bool, error) {
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		if o.country != "" {
			q.Set("boundary.country", o.country)
		}
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeoPoint{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.GeoPoint{}, false, fmt.Errorf("invalid coordinate format for %q", address)
	}

	// ORS returns GeoJSON order [lon, lat].
	p := domain.GeoPoint{Lon: coords[0], Lat: coords[1]}
	if err := p.Validate(); err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("geocode result for %q: %w", address, err)
	}
	return p, true, nil
}
