package handlers

import (
	"delivery-route-planner/internal/api/dto"
	"delivery-route-planner/internal/config"
	"net/http"
)

// DepotHandler lists the configured depot presets.
type DepotHandler struct {
	Depots       []config.Depot
	DefaultDepot string
}

func (h *DepotHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.ListDepotsResponse{Depots: make([]dto.DepotResponse, 0, len(h.Depots))}
	for _, d := range h.Depots {
		res.Depots = append(res.Depots, dto.DepotResponse{
			Name:     d.Name,
			Location: dto.Point{Lat: d.Location.Lat, Lon: d.Location.Lon},
			Default:  d.Name == h.DefaultDepot,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
