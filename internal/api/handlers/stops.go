package handlers

import (
	"delivery-route-planner/internal/api/dto"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"delivery-route-planner/internal/ports"
	"log"
	"net/http"
)

// StopHandler exposes read-only stop retrieval endpoints.
type StopHandler struct {
	Repo ports.StopRepository
}

func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		log.Printf("req_id=%s list stops failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStopsResponse{
		Stops: make([]dto.StopResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, stopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func stopResponse(s domain.Stop) dto.StopResponse {
	res := dto.StopResponse{
		StopID:       s.ID,
		CustomerName: s.Payload.CustomerName,
		Address:      s.Payload.Address,
		City:         s.Payload.City,
		Items:        nonNil(s.Payload.Items),
		Amount:       s.Payload.Amount,
		Resolved:     s.HasLocation(),
	}
	if s.Location != nil {
		res.Location = &dto.Point{Lat: s.Location.Lat, Lon: s.Location.Lon}
	}
	return res
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
