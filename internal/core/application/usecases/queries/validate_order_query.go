package queries

import (
	"errors"

	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/pkg/guard"
)

var ErrValidateOrderQueryIsNotConstructed = errors.New(
	"ValidateOrderQuery must be created via NewValidateOrderQuery constructor",
)

// ValidateOrderQuery checks an order against the restaurants currently
// published by the data provider.
type ValidateOrderQuery struct {
	order order.Order

	guard guard.ConstructorGuard
}

// NewValidateOrderQuery creates the query.
func NewValidateOrderQuery(o order.Order) ValidateOrderQuery {
	return ValidateOrderQuery{order: o, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ValidateOrderQuery) Validate() error {
	return q.guard.Validate(ErrValidateOrderQueryIsNotConstructed)
}

func (q ValidateOrderQuery) Order() order.Order {
	return q.order
}

// ValidateOrderQueryResponse is the verdict for the order.
type ValidateOrderQueryResponse struct {
	OrderNo string
	Result  order.ValidationResult
}
