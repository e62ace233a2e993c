package services

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"delivery-route-planner/internal/ports"
	"errors"
	"fmt"
	"log"
	"strings"
)

type PlanDeliveriesRequest struct {
	Depot domain.GeoPoint
	// StopIDs selects stored stops; empty means every stored stop.
	StopIDs []string
	// Stops, when non-empty, are planned directly and the repository is not consulted.
	Stops   []domain.Stop
	Options PlannerOptions
	// Resolve geocodes stops lacking a location before planning.
	Resolve bool
}

type planResult struct {
	plan *domain.RoutePlan
	err  error
}

// PlanDeliveries loads, resolves and orders the requested stops for one depot.
//
// The routing engine itself has no cancellation points. If ctx expires before the
// engine finishes, the whole call fails with the context error and no partial
// route is returned.
func PlanDeliveries(
	ctx context.Context,
	req PlanDeliveriesRequest,
	repo ports.StopRepository,
	geocoder ports.Geocoder,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "services.PlanDeliveries")(&err)

	strategy, err := ParseStrategy(string(req.Options.Strategy))
	if err != nil {
		obs.PlansTotal.WithLabelValues("invalid", outcomeLabel(err)).Inc()
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}
	req.Options.Strategy = strategy

	// Options and depot are checked before any lookup, geocoding or write-back.
	if err := validateRequest(req); err != nil {
		obs.PlansTotal.WithLabelValues(string(strategy), outcomeLabel(err)).Inc()
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	stops, err := loadStops(ctx, req, repo)
	if err != nil {
		obs.PlansTotal.WithLabelValues(string(strategy), outcomeLabel(err)).Inc()
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	if req.Resolve {
		resolved, err := ResolveCoordinates(ctx, stops, geocoder)
		if err != nil {
			obs.PlansTotal.WithLabelValues(string(strategy), outcomeLabel(err)).Inc()
			return nil, fmt.Errorf("plan deliveries: %w", err)
		}
		// Inline stops are caller-owned; only stored stops are written back.
		if len(req.Stops) == 0 {
			storeResolved(ctx, repo, stops, resolved)
		}
		stops = resolved
	}

	if err := ctx.Err(); err != nil {
		obs.PlansTotal.WithLabelValues(string(strategy), outcomeLabel(err)).Inc()
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	// Buffered so the engine goroutine can always finish and exit after a timeout.
	done := make(chan planResult, 1)
	go func() {
		plan, err := PlanRoute(req.Depot, stops, req.Options)
		done <- planResult{plan: plan, err: err}
	}()

	select {
	case <-ctx.Done():
		err = ctx.Err()
		obs.PlansTotal.WithLabelValues(string(strategy), outcomeLabel(err)).Inc()
		return nil, fmt.Errorf("plan deliveries: %d stops: %w", len(stops), err)
	case res := <-done:
		if res.err != nil {
			obs.PlansTotal.WithLabelValues(string(strategy), outcomeLabel(res.err)).Inc()
			return nil, fmt.Errorf("plan deliveries: %w", res.err)
		}
		obs.PlansTotal.WithLabelValues(string(strategy), "ok").Inc()
		obs.PlanStops.Observe(float64(len(res.plan.Stops)))
		return res.plan, nil
	}
}

func validateRequest(req PlanDeliveriesRequest) error {
	if err := req.Options.Validate(); err != nil {
		return err
	}
	if err := req.Depot.Validate(); err != nil {
		return &domain.InvalidCoordinateError{StopID: "depot", Point: req.Depot, Reason: err.Error()}
	}
	return nil
}

func loadStops(ctx context.Context, req PlanDeliveriesRequest, repo ports.StopRepository) ([]domain.Stop, error) {
	if len(req.Stops) > 0 {
		return req.Stops, nil
	}

	if repo == nil {
		return nil, errors.New("load stops: no stops given and no repository configured")
	}

	ids := make([]string, 0, len(req.StopIDs))
	for _, id := range req.StopIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, errors.New("load stops: stop id must be non-empty")
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		stops, err := repo.ListStops(ctx)
		if err != nil {
			return nil, fmt.Errorf("load stops: list stops: %w", err)
		}
		return stops, nil
	}

	stops, err := repo.GetStops(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load stops: get %d stops: %w", len(ids), err)
	}
	return stops, nil
}

// storeResolved persists coordinates that were filled in during this request.
// Failures are logged; the plan is still computed from the resolved values.
func storeResolved(ctx context.Context, repo ports.StopRepository, before, after []domain.Stop) {
	w, ok := repo.(ports.StopLocationWriter)
	if !ok {
		return
	}

	for i := range after {
		if before[i].HasLocation() || !after[i].HasLocation() {
			continue
		}
		if err := w.UpdateLocation(ctx, after[i].ID, *after[i].Location); err != nil {
			log.Printf("req_id=%s op=services.storeResolved stop_id=%s err=%v", obs.RequestID(ctx), after[i].ID, err)
		}
	}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCoordinate):
		return "missing_coordinate"
	case errors.Is(err, domain.ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.Is(err, domain.ErrInvalidCoordinate):
		return "invalid_coordinate"
	case errors.Is(err, domain.ErrDuplicateStop):
		return "duplicate_stop"
	case errors.Is(err, domain.ErrUnknownStop):
		return "unknown_stop"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "error"
}
