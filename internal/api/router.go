package api

import (
	"delivery-route-planner/internal/api/handlers"
	"delivery-route-planner/internal/config"
	"delivery-route-planner/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer needs. Geocoder may be nil.
type Deps struct {
	Repo     ports.StopRepository
	Geocoder ports.Geocoder
	Config   config.Config
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Repo: deps.Repo}
	depotHandler := &handlers.DepotHandler{
		Depots:       deps.Config.Depots,
		DefaultDepot: deps.Config.DefaultDepot,
	}
	planHandler := &handlers.PlanHandler{
		Repo:         deps.Repo,
		Geocoder:     deps.Geocoder,
		Depots:       deps.Config.Depots,
		DefaultDepot: deps.Config.DefaultDepot,
		Defaults:     deps.Config.Planner,
		Timeout:      deps.Config.PlanTimeout,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/stops", stopHandler.List)
	mux.HandleFunc("/depots", depotHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)

	return loggingMiddleware(mux)
}
