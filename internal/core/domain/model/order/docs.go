// Package order models pizza orders and the restaurants that serve them.
//
// The package includes:
//   - Order: a customer order as submitted, with pizzas and payment card details
//   - Restaurant: a pickup location with its opening days and menu
//   - Status and ValidationCode: the outcome of validating an order
//   - ValidationResult: status, code and the restaurant the order was matched to
//
// Orders are validated by services.OrderValidator; this package only holds the
// data and the vocabulary of outcomes.
package order
