// Package queries contains read operations: planning a delivery path for an
// order and validating an order against the current restaurant data.
package queries

import (
	"errors"
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/pkg/guard"
)

var (
	ErrCalcDeliveryPathQueryIsNotConstructed = errors.New(
		"CalcDeliveryPathQuery must be created via NewCalcDeliveryPathQuery constructor",
	)
	ErrOrderIsInvalid = errors.New("order is invalid")
	ErrNoPathFound    = errors.New("no delivery path found")
)

// OrderRejectedError carries the validation verdict of a rejected order.
// It matches ErrOrderIsInvalid with errors.Is.
type OrderRejectedError struct {
	Result order.ValidationResult
}

func (e *OrderRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderIsInvalid, e.Result.Code)
}

func (e *OrderRejectedError) Unwrap() error {
	return ErrOrderIsInvalid
}

// CalcDeliveryPathQuery asks for the drone path that delivers an order from
// its restaurant to the drop-off point.
//
// Example:
//
//	query, err := NewCalcDeliveryPathQuery(o, kernel.NewUUID())
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	switch {
//	case errors.Is(err, ErrOrderIsInvalid), errors.Is(err, ErrNoPathFound):
//	    // client error
//	case err != nil:
//	    return err
//	}
//	fmt.Printf("%d moves from %s\n", resp.Path.Moves(), resp.Restaurant.Name)
type CalcDeliveryPathQuery struct {
	order  order.Order
	planID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCalcDeliveryPathQuery creates the query. planID tags the plan in logs
// and responses.
func NewCalcDeliveryPathQuery(o order.Order, planID kernel.UUID) (CalcDeliveryPathQuery, error) {
	if err := planID.Validate(); err != nil {
		return CalcDeliveryPathQuery{}, err
	}
	return CalcDeliveryPathQuery{
		order:  o,
		planID: planID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CalcDeliveryPathQuery) Validate() error {
	return q.guard.Validate(ErrCalcDeliveryPathQueryIsNotConstructed)
}

func (q CalcDeliveryPathQuery) Order() order.Order {
	return q.order
}

func (q CalcDeliveryPathQuery) PlanID() kernel.UUID {
	return q.planID
}

// CalcDeliveryPathQueryResponse is a planned delivery.
type CalcDeliveryPathQueryResponse struct {
	PlanID     kernel.UUID
	Restaurant order.Restaurant
	DropOff    kernel.Position
	Path       services.Path
	// FromCache is set when the path was served from the path cache.
	FromCache bool

	// The regions the path was planned against.
	CentralArea region.NamedRegion
	NoFlyZones  []region.NamedRegion
}
