package kernel

import (
	"fmt"
	"math"
	"slices"

	"dronedelivery/internal/pkg/errs"
)

const (
	// DefaultMoveDistance is the length of one drone move in degrees.
	DefaultMoveDistance = 0.00015
	// DefaultCloseThreshold is the distance at which two positions count as close.
	DefaultCloseThreshold = 0.00015
)

// ErrAngleIsInvalid is returned by Grid.Step for a bearing outside the grid's angle set.
var ErrAngleIsInvalid = errs.NewValueIsInvalidError("angle")

// Grid is the move model of the drone: every move covers MoveDistance along one
// of Angles, and the search stops once a position is within CloseThreshold of
// the goal. DefaultGrid returns the production values; tests and callers may
// supply alternate grids.
type Grid struct {
	MoveDistance   float64
	CloseThreshold float64
	Angles         []Angle
}

// DefaultGrid returns the 16-point compass grid with 0.00015 degree moves.
func DefaultGrid() Grid {
	return Grid{
		MoveDistance:   DefaultMoveDistance,
		CloseThreshold: DefaultCloseThreshold,
		Angles:         CompassAngles(),
	}
}

// Validate checks that the grid can drive a search.
func (g Grid) Validate() error {
	if !(g.MoveDistance > 0) || math.IsInf(g.MoveDistance, 0) {
		return errs.NewValueIsInvalidError("moveDistance")
	}
	if g.CloseThreshold < 0 || math.IsNaN(g.CloseThreshold) {
		return errs.NewValueIsInvalidError("closeThreshold")
	}
	if len(g.Angles) == 0 {
		return errs.NewValueIsRequiredError("angles")
	}
	for _, a := range g.Angles {
		if a != a.Normalize() {
			return errs.NewValueIsInvalidErrorWithCause("angles",
				fmt.Errorf("%s is outside [0, 360)", a))
		}
	}
	return nil
}

// IsClose reports whether a and b are no more than CloseThreshold apart.
func (g Grid) IsClose(a, b Position) bool {
	return a.DistanceTo(b) <= g.CloseThreshold
}

// Step returns the position reached from origin by one move along angle.
// The angle is normalized into [0, 360) first; if the result is not one of the
// grid's angles ErrAngleIsInvalid is returned and no move is made.
func (g Grid) Step(origin Position, angle Angle) (Position, error) {
	normalized := angle.Normalize()
	if !slices.Contains(g.Angles, normalized) {
		return Position{}, fmt.Errorf("%w: %s is not a grid bearing", ErrAngleIsInvalid, angle)
	}

	theta := normalized.Radians()
	return derived(
		origin.lng+g.MoveDistance*math.Cos(theta),
		origin.lat+g.MoveDistance*math.Sin(theta),
	), nil
}
