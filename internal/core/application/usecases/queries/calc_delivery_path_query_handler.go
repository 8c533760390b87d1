package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"
)

// CalcDeliveryPathQueryHandler validates an order, picks its restaurant and
// searches for a path from there to the drop-off point.
//
// The cache and the metrics recorder are optional; nil disables them. Cache
// failures are logged and never fail a request.
type CalcDeliveryPathQueryHandler struct {
	regions    ports.RegionProvider
	validator  services.OrderValidator
	pathfinder *services.Pathfinder
	cache      ports.PathCache
	metrics    ports.SearchMetrics
	dropOff    kernel.Position
	now        func() time.Time
	logger     *slog.Logger
}

// NewCalcDeliveryPathQueryHandler creates a handler that delivers to dropOff.
func NewCalcDeliveryPathQueryHandler(
	regions ports.RegionProvider,
	pathfinder *services.Pathfinder,
	cache ports.PathCache,
	metrics ports.SearchMetrics,
	dropOff kernel.Position,
	logger *slog.Logger,
) CalcDeliveryPathQueryHandler {
	return CalcDeliveryPathQueryHandler{
		regions:    regions,
		validator:  services.NewOrderValidator(),
		pathfinder: pathfinder,
		cache:      cache,
		metrics:    metrics,
		dropOff:    dropOff,
		now:        time.Now,
		logger:     logger.With("component", "calc_delivery_path_handler"),
	}
}

// WithClock returns a copy of the handler that reads the time from now.
func (h CalcDeliveryPathQueryHandler) WithClock(now func() time.Time) CalcDeliveryPathQueryHandler {
	h.now = now
	return h
}

// Handle plans the delivery.
//
// A rejected order returns *OrderRejectedError and an unreachable drop-off
// returns ErrNoPathFound. Both found paths and unreachable verdicts are
// cached. Region data failures are passed through.
func (h CalcDeliveryPathQueryHandler) Handle(
	ctx context.Context,
	query CalcDeliveryPathQuery,
) (CalcDeliveryPathQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalcDeliveryPathQueryResponse{}, err
	}
	log := h.logger.With("plan_id", query.PlanID().String(), "order_no", query.Order().OrderNo)

	data, err := h.regions.Current(ctx)
	if err != nil {
		return CalcDeliveryPathQueryResponse{}, fmt.Errorf("failed to load region data: %w", err)
	}

	result := h.validator.Validate(query.Order(), data.Restaurants, h.now())
	if !result.IsValid() {
		log.InfoContext(ctx, "Order rejected", "code", result.Code.String())
		return CalcDeliveryPathQueryResponse{}, &OrderRejectedError{Result: result}
	}

	resp := CalcDeliveryPathQueryResponse{
		PlanID:     query.PlanID(),
		Restaurant: *result.Restaurant,
		DropOff:    h.dropOff,

		CentralArea: data.CentralArea,
		NoFlyZones:  data.NoFlyZones,
	}
	key := ports.PathKey{
		Start:         resp.Restaurant.Location,
		End:           h.dropOff,
		Fingerprint:   data.Fingerprint,
		MaxExpansions: h.pathfinder.Config().MaxExpansions,
	}

	if path, ok := h.cached(ctx, log, key); ok {
		if path.IsEmpty() {
			log.InfoContext(ctx, "No delivery path, served from cache", "restaurant", resp.Restaurant.Name)
			return CalcDeliveryPathQueryResponse{}, noPathError(path, resp.Restaurant.Name)
		}
		resp.Path = path
		resp.FromCache = true
		log.InfoContext(ctx, "Delivery path served from cache", "moves", path.Moves())
		return resp, nil
	}

	started := time.Now()
	path, err := h.pathfinder.FindPath(ctx, key.Start, key.End, data.CentralArea, data.NoFlyRegions())
	if h.metrics != nil {
		h.metrics.ObserveSearch(path, time.Since(started).Seconds())
	}
	if err != nil {
		return CalcDeliveryPathQueryResponse{}, fmt.Errorf("path search failed: %w", err)
	}
	if h.cache != nil {
		if err := h.cache.Put(ctx, key, path); err != nil {
			log.WarnContext(ctx, "Failed to cache delivery path", "error", err)
		}
	}

	if path.IsEmpty() {
		log.WarnContext(ctx, "No delivery path found",
			"restaurant", resp.Restaurant.Name,
			"expanded", path.Expanded,
			"exhausted", path.Exhausted,
		)
		return CalcDeliveryPathQueryResponse{}, noPathError(path, resp.Restaurant.Name)
	}

	log.InfoContext(ctx, "Delivery path planned",
		"restaurant", resp.Restaurant.Name,
		"moves", path.Moves(),
		"expanded", path.Expanded,
		"duration", time.Since(started),
	)
	resp.Path = path
	return resp, nil
}

func noPathError(path services.Path, restaurant string) error {
	if path.Exhausted {
		return fmt.Errorf("%w: search budget exhausted after %d expansions", ErrNoPathFound, path.Expanded)
	}
	return fmt.Errorf("%w from %s", ErrNoPathFound, restaurant)
}

func (h CalcDeliveryPathQueryHandler) cached(
	ctx context.Context,
	log *slog.Logger,
	key ports.PathKey,
) (services.Path, bool) {
	if h.cache == nil {
		return services.Path{}, false
	}

	path, found, err := h.cache.Get(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "Path cache lookup failed", "error", err)
		found = false
	}
	if h.metrics != nil {
		h.metrics.ObserveCache(found)
	}
	return path, found
}
