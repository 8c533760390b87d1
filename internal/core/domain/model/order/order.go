package order

import (
	"strings"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
)

const (
	// MaxPizzaCount is the largest number of pizzas one drone carries.
	MaxPizzaCount = 4
	// DeliveryChargeInPence is added once to every order total.
	DeliveryChargeInPence = 100
	// DateLayout is the layout of Order.OrderDate.
	DateLayout = time.DateOnly
	// ExpiryLayout is the MM/yy layout of CreditCard.Expiry.
	ExpiryLayout = "01/06"
)

// Pizza is a named menu item. On an order the price is what the customer
// was charged; on a menu it is the restaurant's price.
type Pizza struct {
	Name         string
	PriceInPence int
}

// CreditCard holds payment details as typed by the customer.
type CreditCard struct {
	Number string
	Expiry string
	CVV    string
}

// Order is a customer order as received. Its fields are not trusted until the
// order has been validated.
type Order struct {
	OrderNo           string
	OrderDate         string
	PriceTotalInPence int
	Pizzas            []Pizza
	CreditCard        CreditCard
}

// Restaurant is a pickup point for delivery paths.
type Restaurant struct {
	Name        string
	Location    kernel.Position
	OpeningDays []time.Weekday
	Menu        []Pizza
}

// IsOpenOn reports whether the restaurant opens on day.
func (r Restaurant) IsOpenOn(day time.Weekday) bool {
	for _, d := range r.OpeningDays {
		if d == day {
			return true
		}
	}
	return false
}

// MenuPizza looks a pizza up by name, ignoring case.
func (r Restaurant) MenuPizza(name string) (Pizza, bool) {
	for _, p := range r.Menu {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Pizza{}, false
}

// ParseWeekday converts an upper-case English day name such as "MONDAY".
func ParseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, true
		}
	}
	return 0, false
}
