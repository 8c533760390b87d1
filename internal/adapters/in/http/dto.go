package http

import (
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
)

// LngLat is a position on the wire.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type LngLatPairRequest struct {
	Position1 LngLat `json:"position1"`
	Position2 LngLat `json:"position2"`
}

type LngLatAngleRequest struct {
	Start LngLat  `json:"start"`
	Angle float64 `json:"angle"`
}

type NamedRegion struct {
	Name     string   `json:"name"`
	Vertices []LngLat `json:"vertices"`
}

type LngLatRegionRequest struct {
	Position LngLat      `json:"position"`
	Region   NamedRegion `json:"region"`
}

type Pizza struct {
	Name         string `json:"name"`
	PriceInPence int    `json:"priceInPence"`
}

type CreditCardInformation struct {
	CreditCardNumber string `json:"creditCardNumber"`
	CreditCardExpiry string `json:"creditCardExpiry"`
	CVV              string `json:"cvv"`
}

type Order struct {
	OrderNo               string                `json:"orderNo"`
	OrderDate             string                `json:"orderDate"`
	PriceTotalInPence     int                   `json:"priceTotalInPence"`
	PizzasInOrder         []Pizza               `json:"pizzasInOrder"`
	CreditCardInformation CreditCardInformation `json:"creditCardInformation"`
}

type OrderValidationResult struct {
	OrderStatus         string `json:"orderStatus"`
	OrderValidationCode string `json:"orderValidationCode"`
}

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (p LngLat) toDomain() (kernel.Position, error) {
	return kernel.NewPosition(p.Lng, p.Lat)
}

func fromPosition(p kernel.Position) LngLat {
	return LngLat{Lng: p.Lng(), Lat: p.Lat()}
}

func fromPositions(ps []kernel.Position) []LngLat {
	out := make([]LngLat, len(ps))
	for i, p := range ps {
		out[i] = fromPosition(p)
	}
	return out
}

func (r NamedRegion) toDomain() (region.NamedRegion, error) {
	pairs := make([][2]float64, len(r.Vertices))
	for i, v := range r.Vertices {
		pairs[i] = [2]float64{v.Lng, v.Lat}
	}
	poly, err := region.FromPairs(pairs)
	if err != nil {
		return region.NamedRegion{}, err
	}
	named := region.NamedRegion{Name: r.Name, Polygon: poly}
	if err := region.Validate(named); err != nil {
		return region.NamedRegion{}, err
	}
	return named, nil
}

func (o Order) toDomain() order.Order {
	pizzas := make([]order.Pizza, len(o.PizzasInOrder))
	for i, p := range o.PizzasInOrder {
		pizzas[i] = order.Pizza{Name: p.Name, PriceInPence: p.PriceInPence}
	}
	return order.Order{
		OrderNo:           o.OrderNo,
		OrderDate:         o.OrderDate,
		PriceTotalInPence: o.PriceTotalInPence,
		Pizzas:            pizzas,
		CreditCard: order.CreditCard{
			Number: o.CreditCardInformation.CreditCardNumber,
			Expiry: o.CreditCardInformation.CreditCardExpiry,
			CVV:    o.CreditCardInformation.CVV,
		},
	}
}

func fromValidationResult(r order.ValidationResult) OrderValidationResult {
	return OrderValidationResult{
		OrderStatus:         r.Status.String(),
		OrderValidationCode: r.Code.String(),
	}
}
