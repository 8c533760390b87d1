package order

import (
	"fmt"

	"dronedelivery/internal/pkg/errs"
)

// Status is the verdict on an order.
type Status int

const (
	// Undefined is the zero value; the order has not been validated.
	Undefined Status = iota
	// Valid orders can be delivered.
	Valid
	// Invalid orders are rejected with a ValidationCode.
	Invalid
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Undefined: "UNDEFINED",
		Valid:     "VALID",
		Invalid:   "INVALID",
	}
}

// String returns the wire name, "UNDEFINED" for unknown values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNDEFINED"
}

// ValidationCode says why an order is invalid. NoError accompanies Valid.
type ValidationCode int

const (
	CodeUndefined ValidationCode = iota
	NoError
	CardNumberInvalid
	ExpiryDateInvalid
	CVVInvalid
	TotalIncorrect
	PizzaNotDefined
	MaxPizzaCountExceeded
	PizzaFromMultipleRestaurants
	RestaurantClosed
	PriceForPizzaInvalid
	EmptyOrder
	OrderDateInvalid
)

func getCodeStrings() map[ValidationCode]string {
	return map[ValidationCode]string{
		CodeUndefined:                "UNDEFINED",
		NoError:                      "NO_ERROR",
		CardNumberInvalid:            "CARD_NUMBER_INVALID",
		ExpiryDateInvalid:            "EXPIRY_DATE_INVALID",
		CVVInvalid:                   "CVV_INVALID",
		TotalIncorrect:               "TOTAL_INCORRECT",
		PizzaNotDefined:              "PIZZA_NOT_DEFINED",
		MaxPizzaCountExceeded:        "MAX_PIZZA_COUNT_EXCEEDED",
		PizzaFromMultipleRestaurants: "PIZZA_FROM_MULTIPLE_RESTAURANTS",
		RestaurantClosed:             "RESTAURANT_CLOSED",
		PriceForPizzaInvalid:         "PRICE_FOR_PIZZA_INVALID",
		EmptyOrder:                   "EMPTY_ORDER",
		OrderDateInvalid:             "ORDER_DATE_INVALID",
	}
}

// String returns the wire name, "UNDEFINED" for unknown values.
func (c ValidationCode) String() string {
	if str, ok := getCodeStrings()[c]; ok {
		return str
	}
	return "UNDEFINED"
}

// ParseValidationCode converts a wire name back into a code.
func ParseValidationCode(s string) (ValidationCode, error) {
	for c, str := range getCodeStrings() {
		if str == s {
			return c, nil
		}
	}
	return CodeUndefined, errs.NewValueIsInvalidErrorWithCause(
		"orderValidationCode", fmt.Errorf("%q is not a validation code", s))
}

// ValidationResult is the outcome of validating one order. Restaurant is set
// only for Valid results.
type ValidationResult struct {
	Status     Status
	Code       ValidationCode
	Restaurant *Restaurant
}

// Rejected builds an Invalid result.
func Rejected(code ValidationCode) ValidationResult {
	return ValidationResult{Status: Invalid, Code: code}
}

// Accepted builds a Valid result bound to r.
func Accepted(r Restaurant) ValidationResult {
	return ValidationResult{Status: Valid, Code: NoError, Restaurant: &r}
}

// IsValid reports whether the order may be delivered.
func (r ValidationResult) IsValid() bool {
	return r.Status == Valid && r.Code == NoError
}
