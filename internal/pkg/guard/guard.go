// Package guard holds the constructor guard embedded by value objects,
// commands and queries that must only be built through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller passes a nil error for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. A zero-value
// guard fails validation, so a struct literal like kernel.Position{} or
// queries.CalcDeliveryPathQuery{} is detected before it reaches the domain.
//
// Example usage:
//
//	type Grid struct {
//	    moveDistance float64
//	    guard        guard.ConstructorGuard
//	}
//
//	func NewGrid(d float64) Grid {
//	    return Grid{moveDistance: d, guard: guard.NewConstructorGuard()}
//	}
//
//	func (g Grid) Validate() error {
//	    return g.guard.Validate(ErrGridIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
