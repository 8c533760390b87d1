package kernel

import (
	"errors"
	"fmt"
	"math"

	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

const (
	// LngMin is the smallest accepted longitude in degrees.
	LngMin = -180.0
	// LngMax is the largest accepted longitude in degrees.
	LngMax = 180.0
	// LatMin is the smallest accepted latitude in degrees.
	LatMin = -90.0
	// LatMax is the largest accepted latitude in degrees.
	LatMax = 90.0
)

// ErrPositionIsNotConstructed is returned when validating a zero-value Position.
var ErrPositionIsNotConstructed = errs.NewValueIsRequiredError(
	"position must be created via NewPosition")

var errNotFinite = errors.New("coordinate must be a finite number")

// Position is a point on the delivery plane given as (longitude, latitude) in degrees.
//
// Position is an immutable, comparable value object. Two positions are equal only
// when both coordinates are bit-for-bit equal, which makes Position usable as a
// map key in the search's best-cost table. The plane is treated as flat: distances
// are measured in degrees, not meters, so they stay consistent with the fixed
// step length of the Grid.
//
// Example:
//
//	tower, err := kernel.NewPosition(-3.186874, 55.944494)
//	if err != nil {
//	    // out of range or not finite
//	}
//	fmt.Println(tower) // Position(-3.186874,55.944494)
type Position struct { //nolint:recvcheck //using for validation
	lng   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewPosition creates a Position from caller supplied coordinates.
//
// Longitude must be within [LngMin..LngMax], latitude within [LatMin..LatMax],
// and neither may be NaN or infinite. All violations are reported together.
//
// Returns:
//   - Position: a valid position
//   - error: errs.ValueIsOutOfRangeError for each rejected coordinate
func NewPosition(lng, lat float64) (Position, error) {
	p := Position{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLng(lng), p.setLat(lat)); err != nil {
		return Position{}, err
	}

	return p, nil
}

// derived builds a position reached by stepping; such positions are not range checked.
func derived(lng, lat float64) Position {
	return Position{lng: lng, lat: lat, guard: guard.NewConstructorGuard()}
}

// Validate returns ErrPositionIsNotConstructed for the zero value.
func (p Position) Validate() error {
	return p.guard.Validate(ErrPositionIsNotConstructed)
}

// Lng returns the longitude in degrees.
func (p Position) Lng() float64 {
	return p.lng
}

// Lat returns the latitude in degrees.
func (p Position) Lat() float64 {
	return p.lat
}

// DistanceTo returns the straight-line Euclidean distance to other in the (lng, lat) plane:
//
//	sqrt((a.lng-b.lng)^2 + (a.lat-b.lat)^2)
//
// The result is in degrees and is symmetric.
func (p Position) DistanceTo(other Position) float64 {
	dx := p.lng - other.lng
	dy := p.lat - other.lat
	return math.Sqrt(dx*dx + dy*dy)
}

// IsEqual reports exact coordinate equality.
func (p Position) IsEqual(other Position) bool {
	return p.lng == other.lng && p.lat == other.lat
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("Position(%g,%g)", p.lng, p.lat)
}

func (p *Position) setLng(lng float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return errs.NewValueIsOutOfRangeErrorWithCause("lng", lng, LngMin, LngMax, errNotFinite)
	}
	if lng < LngMin || lng > LngMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LngMin, LngMax)
	}

	p.lng = lng
	return nil
}

func (p *Position) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsOutOfRangeErrorWithCause("lat", lat, LatMin, LatMax, errNotFinite)
	}
	if lat < LatMin || lat > LatMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatMin, LatMax)
	}

	p.lat = lat
	return nil
}
