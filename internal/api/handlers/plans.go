package handlers

import (
	"context"
	"delivery-route-planner/internal/api/dto"
	"delivery-route-planner/internal/config"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"delivery-route-planner/internal/ports"
	"delivery-route-planner/internal/services"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type PlanHandler struct {
	Repo         ports.StopRepository
	Geocoder     ports.Geocoder
	Depots       []config.Depot
	DefaultDepot string
	Defaults     services.PlannerOptions
	// Timeout bounds a single planning request; zero means no limit beyond the client's.
	Timeout time.Duration
}

// Plan builds one round-trip route from a depot through the requested stops.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	depot, err := h.depot(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Stops) > 0 && len(req.StopIDs) > 0 {
		writeError(w, r, http.StatusBadRequest, "stops and stop_ids are mutually exclusive")
		return
	}
	for _, id := range req.StopIDs {
		if strings.TrimSpace(id) == "" {
			writeError(w, r, http.StatusBadRequest, "stop_ids must not contain empty ids")
			return
		}
	}

	inline, err := inlineStops(req.Stops)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opts := h.Defaults
	if req.Strategy != "" {
		opts.Strategy = services.Strategy(req.Strategy)
	}
	if req.AverageSpeedKmh != nil {
		opts.AverageSpeedKmh = *req.AverageSpeedKmh
	}
	if req.DwellMinutesPerStop != nil {
		opts.DwellMinutesPerStop = *req.DwellMinutesPerStop
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	svcReq := services.PlanDeliveriesRequest{
		Depot:   depot,
		StopIDs: req.StopIDs,
		Stops:   inline,
		Options: opts,
		Resolve: req.Resolve,
	}

	plan, err := services.PlanDeliveries(ctx, svcReq, h.Repo, h.Geocoder)
	if err != nil {
		status, msg := planErrorStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("req_id=%s plan deliveries failed: %v", obs.RequestID(ctx), err)
		}
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan))
}

// depot picks an explicit point, then a named preset, then the configured default.
func (h *PlanHandler) depot(req dto.PlanRequest) (domain.GeoPoint, error) {
	name := strings.TrimSpace(req.DepotName)

	if req.Depot != nil {
		if name != "" {
			return domain.GeoPoint{}, errors.New("depot and depot_name are mutually exclusive")
		}
		return domain.GeoPoint{Lat: req.Depot.Lat, Lon: req.Depot.Lon}, nil
	}

	if name == "" {
		name = h.DefaultDepot
	}
	if name == "" {
		return domain.GeoPoint{}, errors.New("depot or depot_name is required")
	}

	for _, d := range h.Depots {
		if d.Name == name {
			return d.Location, nil
		}
	}
	return domain.GeoPoint{}, fmt.Errorf("unknown depot %q", name)
}

func inlineStops(in []dto.StopRequest) ([]domain.Stop, error) {
	if len(in) == 0 {
		return nil, nil
	}

	out := make([]domain.Stop, 0, len(in))
	for i, s := range in {
		id := strings.TrimSpace(s.StopID)
		if id == "" {
			return nil, fmt.Errorf("stops[%d]: stop_id is required", i)
		}

		stop := domain.Stop{
			ID: id,
			Payload: domain.StopPayload{
				CustomerName: s.CustomerName,
				Address:      s.Address,
				City:         s.City,
				Items:        s.Items,
				Amount:       s.Amount,
			},
		}

		switch {
		case s.Lat != nil && s.Lon != nil:
			stop.Location = &domain.GeoPoint{Lat: *s.Lat, Lon: *s.Lon}
		case s.Lat != nil || s.Lon != nil:
			return nil, fmt.Errorf("stops[%d]: lat and lon must be given together", i)
		}

		out = append(out, stop)
	}
	return out, nil
}

func planErrorStatus(err error) (int, string) {
	var (
		missing   *domain.MissingCoordinateError
		invalid   *domain.InvalidCoordinateError
		badConfig *domain.InvalidConfigurationError
		duplicate *domain.DuplicateStopError
		unknown   *domain.UnknownStopError
	)

	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, missing.Error()
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Error()
	case errors.As(err, &badConfig):
		return http.StatusBadRequest, badConfig.Error()
	case errors.As(err, &duplicate):
		return http.StatusBadRequest, duplicate.Error()
	case errors.As(err, &unknown):
		return http.StatusBadRequest, unknown.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "planning timed out"
	}
	return http.StatusInternalServerError, "internal server error"
}

func planResponse(p *domain.RoutePlan) dto.PlanResponse {
	res := dto.PlanResponse{
		Depot:                  dto.Point{Lat: p.Depot.Lat, Lon: p.Depot.Lon},
		Strategy:               p.Strategy,
		Stops:                  make([]dto.PlanStopResponse, 0, len(p.Stops)),
		ReturnLegKm:            p.Metrics.ReturnLegKm,
		TotalDistanceKm:        p.Metrics.TotalDistanceKm,
		DrivingHours:           p.Metrics.DrivingHours,
		DwellHours:             p.Metrics.DwellHours,
		EstimatedDurationHours: p.Metrics.EstimatedDurationHours,
	}

	for i, s := range p.Stops {
		m := p.Metrics.Stops[i]
		res.Stops = append(res.Stops, dto.PlanStopResponse{
			Position:             m.Position,
			StopID:               s.ID,
			CustomerName:         s.Payload.CustomerName,
			Address:              s.Payload.Address,
			City:                 s.Payload.City,
			Items:                nonNil(s.Payload.Items),
			Amount:               s.Payload.Amount,
			Location:             dto.Point{Lat: s.Location.Lat, Lon: s.Location.Lon},
			LegDistanceKm:        m.LegDistanceKm,
			CumulativeDistanceKm: m.CumulativeDistanceKm,
		})
	}
	return res
}
