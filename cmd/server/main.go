package main

import (
	"context"
	"database/sql"
	"delivery-route-planner/internal/adapters/cache"
	"delivery-route-planner/internal/adapters/geocoding"
	"delivery-route-planner/internal/adapters/repositories"
	"delivery-route-planner/internal/api"
	"delivery-route-planner/internal/config"
	rediscache "delivery-route-planner/internal/platform/cache"
	"delivery-route-planner/internal/platform/db"
	"delivery-route-planner/internal/ports"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (postgres or SQLite, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer st.db.Close()

	geocoder, err := openGeocoder(ctx, cfg, st.geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.Deps{
		Repo:     st.repo,
		Geocoder: geocoder,
		Config:   cfg,
	})

	// WriteTimeout leaves headroom over PLAN_TIMEOUT for cold-cache geocoding.
	log.Printf("Server listening addr=:%s strategy=%s depots=%d", cfg.Port, cfg.Planner.Strategy, len(cfg.Depots))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.PlanTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

type store struct {
	db           *sql.DB
	repo         ports.StopRepository
	geocodeCache ports.GeocodeCache
}

// openStore uses postgres when DATABASE_URL is set and a local SQLite file otherwise.
// The SQLite file is initialized and seeded on startup for local runs; postgres is
// prepared separately with cmd/dbtool.
func openStore(ctx context.Context, cfg config.Config) (store, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return store{}, err
		}
		return store{
			db:           conn,
			repo:         repositories.NewSQLStopRepository(conn),
			geocodeCache: cache.NewSQLGeocodeCache(conn),
		}, nil
	}

	conn, err := db.OpenSqlite(ctx, cfg.DBPath)
	if err != nil {
		return store{}, err
	}
	if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
		conn.Close()
		return store{}, err
	}
	return store{
		db:           conn,
		repo:         repositories.NewSqliteStopRepository(conn),
		geocodeCache: cache.NewSqliteGeocodeCache(conn),
	}, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// openGeocoder returns nil when no ORS key is configured; plans then require stored coordinates.
func openGeocoder(ctx context.Context, cfg config.Config, durable ports.GeocodeCache) (ports.Geocoder, error) {
	if cfg.ORSAPIKey == "" {
		log.Println("ORS_API_KEY not set; geocoding disabled")
		return nil, nil
	}

	geocodeCache := durable
	client, err := rediscache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("redis unavailable, using durable geocode cache only: %v", err)
	} else if client != nil {
		geocodeCache = cache.NewLayered(cache.NewRedisGeocodeCache(client, cfg.RedisTTL), durable)
	}

	return geocoding.NewORSGeocoder(cfg.ORSAPIKey, geocoding.WithCache(geocodeCache))
}
