package config

import (
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/services"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Depot is a named starting point offered to API callers.
type Depot struct {
	Name     string
	Location domain.GeoPoint
}

type Config struct {
	Port        string
	DatabaseURL string
	DBPath      string
	SeedPath    string
	ORSAPIKey   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	Planner     services.PlannerOptions
	PlanTimeout time.Duration

	Depots       []Depot
	DefaultDepot string
}

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, d)
	}
	return d, nil
}

// Load reads the process environment. Call godotenv.Load first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		DBPath:        Get("DB_PATH", "data/app.db"),
		SeedPath:      Get("SEED_PATH", "data/seeds/stops.json"),
		ORSAPIKey:     Get("ORS_API_KEY", ""),
		RedisAddr:     Get("REDIS_ADDR", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.RedisDB, err = GetInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.RedisTTL, err = GetDuration("REDIS_TTL", 30*24*time.Hour); err != nil {
		return Config{}, err
	}

	strategy, err := services.ParseStrategy(Get("PLAN_STRATEGY", ""))
	if err != nil {
		return Config{}, fmt.Errorf("config: PLAN_STRATEGY: %w", err)
	}
	speed, err := GetFloat("AVERAGE_SPEED_KMH", services.DefaultAverageSpeedKmh)
	if err != nil {
		return Config{}, err
	}
	dwell, err := GetFloat("DWELL_MINUTES_PER_STOP", services.DefaultDwellMinutesPerStop)
	if err != nil {
		return Config{}, err
	}
	cfg.Planner = services.PlannerOptions{
		Strategy:            strategy,
		AverageSpeedKmh:     speed,
		DwellMinutesPerStop: dwell,
	}
	if err := cfg.Planner.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.PlanTimeout, err = GetDuration("PLAN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.Depots, err = ParseDepots(Get("DEPOT_PRESETS", "")); err != nil {
		return Config{}, err
	}
	cfg.DefaultDepot = Get("DEFAULT_DEPOT", "")
	if cfg.DefaultDepot != "" {
		if _, ok := cfg.Depot(cfg.DefaultDepot); !ok {
			return Config{}, fmt.Errorf("config: DEFAULT_DEPOT %q is not in DEPOT_PRESETS", cfg.DefaultDepot)
		}
	}

	return cfg, nil
}

// Depot looks up a preset by name.
func (c Config) Depot(name string) (Depot, bool) {
	for _, d := range c.Depots {
		if d.Name == name {
			return d, true
		}
	}
	return Depot{}, false
}

// ParseDepots parses "name=lat,lon;name2=lat,lon". The result is sorted by name.
func ParseDepots(s string) ([]Depot, error) {
	depots := make([]Depot, 0)
	seen := make(map[string]struct{})

	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, coords, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("config: depot preset %q: want name=lat,lon", entry)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("config: depot preset %q defined twice", name)
		}

		latStr, lonStr, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("config: depot preset %q: want name=lat,lon", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("config: depot preset %q: latitude: %w", name, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("config: depot preset %q: longitude: %w", name, err)
		}

		p := domain.GeoPoint{Lat: lat, Lon: lon}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("config: depot preset %q: %w", name, err)
		}

		seen[name] = struct{}{}
		depots = append(depots, Depot{Name: name, Location: p})
	}

	sort.Slice(depots, func(i, j int) bool { return depots[i].Name < depots[j].Name })
	return depots, nil
}
