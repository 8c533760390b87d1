package services

import (
	"regexp"
	"time"

	"dronedelivery/internal/core/domain/model/order"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

// OrderValidator checks a pizza order and finds the one restaurant that can
// serve it.
//
// Rules are applied in this order and the first failure wins:
//   - the order holds between 1 and order.MaxPizzaCount pizzas
//   - the card number has 16 digits, the CVV 3 digits, and the MM/yy expiry
//     is not before the current month
//   - the order date is a YYYY-MM-DD date
//   - exactly one restaurant open on that weekday lists every pizza, charges
//     the ordered price for each, and its menu total plus the delivery charge
//     equals the order total
type OrderValidator struct{}

// NewOrderValidator creates an OrderValidator.
func NewOrderValidator() OrderValidator {
	return OrderValidator{}
}

// Validate returns the verdict for o. now decides whether the card has expired.
func (v OrderValidator) Validate(o order.Order, restaurants []order.Restaurant, now time.Time) order.ValidationResult {
	switch {
	case len(o.Pizzas) == 0:
		return order.Rejected(order.EmptyOrder)
	case len(o.Pizzas) > order.MaxPizzaCount:
		return order.Rejected(order.MaxPizzaCountExceeded)
	}

	if code := v.checkCard(o.CreditCard, now); code != order.NoError {
		return order.Rejected(code)
	}

	date, err := time.Parse(order.DateLayout, o.OrderDate)
	if err != nil {
		return order.Rejected(order.OrderDateInvalid)
	}

	return v.matchRestaurant(o, restaurants, date.Weekday())
}

func (v OrderValidator) checkCard(card order.CreditCard, now time.Time) order.ValidationCode {
	if !cardNumberPattern.MatchString(card.Number) {
		return order.CardNumberInvalid
	}
	if !cvvPattern.MatchString(card.CVV) {
		return order.CVVInvalid
	}

	expiry, err := time.Parse(order.ExpiryLayout, card.Expiry)
	if err != nil {
		return order.ExpiryDateInvalid
	}
	if monthIndex(expiry) < monthIndex(now) {
		return order.ExpiryDateInvalid
	}
	return order.NoError
}

func (v OrderValidator) matchRestaurant(
	o order.Order,
	restaurants []order.Restaurant,
	day time.Weekday,
) order.ValidationResult {
	var (
		anyOpen    bool
		anyMenu    bool
		anyPricing bool
		matches    []order.Restaurant
	)

	for _, r := range restaurants {
		if !r.IsOpenOn(day) {
			continue
		}
		anyOpen = true

		menuTotal, pricesMatch, ok := v.priceOrder(o, r)
		if !ok {
			continue
		}
		anyMenu = true

		if !pricesMatch {
			continue
		}
		anyPricing = true

		if menuTotal+order.DeliveryChargeInPence == o.PriceTotalInPence {
			matches = append(matches, r)
		}
	}

	switch {
	case len(matches) == 1:
		return order.Accepted(matches[0])
	case len(matches) > 1:
		return order.Rejected(order.PizzaFromMultipleRestaurants)
	case !anyOpen:
		return order.Rejected(order.RestaurantClosed)
	case !anyMenu:
		return order.Rejected(order.PizzaNotDefined)
	case !anyPricing:
		return order.Rejected(order.PriceForPizzaInvalid)
	default:
		return order.Rejected(order.TotalIncorrect)
	}
}

// priceOrder sums the menu prices of the ordered pizzas at r. ok is false when
// a pizza is missing from the menu.
func (v OrderValidator) priceOrder(o order.Order, r order.Restaurant) (total int, pricesMatch, ok bool) {
	pricesMatch = true
	for _, p := range o.Pizzas {
		menu, found := r.MenuPizza(p.Name)
		if !found {
			return 0, false, false
		}
		if menu.PriceInPence != p.PriceInPence {
			pricesMatch = false
		}
		total += menu.PriceInPence
	}
	return total, pricesMatch, true
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
