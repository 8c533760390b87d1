package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"
)

// ValidateOrderQueryHandler runs services.OrderValidator over the current
// restaurant list. A rejected order is a normal result, not an error.
type ValidateOrderQueryHandler struct {
	regions   ports.RegionProvider
	validator services.OrderValidator
	now       func() time.Time
	logger    *slog.Logger
}

func NewValidateOrderQueryHandler(regions ports.RegionProvider, logger *slog.Logger) ValidateOrderQueryHandler {
	return ValidateOrderQueryHandler{
		regions:   regions,
		validator: services.NewOrderValidator(),
		now:       time.Now,
		logger:    logger.With("component", "validate_order_handler"),
	}
}

// WithClock returns a copy of the handler that reads the time from now.
func (h ValidateOrderQueryHandler) WithClock(now func() time.Time) ValidateOrderQueryHandler {
	h.now = now
	return h
}

func (h ValidateOrderQueryHandler) Handle(
	ctx context.Context,
	query ValidateOrderQuery,
) (ValidateOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateOrderQueryResponse{}, err
	}

	data, err := h.regions.Current(ctx)
	if err != nil {
		return ValidateOrderQueryResponse{}, fmt.Errorf("failed to load restaurants: %w", err)
	}

	o := query.Order()
	result := h.validator.Validate(o, data.Restaurants, h.now())
	h.logger.DebugContext(ctx, "Order validated",
		"order_no", o.OrderNo,
		"status", result.Status.String(),
		"code", result.Code.String(),
	)

	return ValidateOrderQueryResponse{OrderNo: o.OrderNo, Result: result}, nil
}
