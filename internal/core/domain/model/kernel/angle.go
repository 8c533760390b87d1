package kernel

import (
	"math"
	"strconv"
)

// Angle is a compass bearing in degrees. 0 points due east and angles grow
// counter-clockwise, so 90 points north.
type Angle float64

// Hover is the arrival angle of the first waypoint of a path: the drone did
// not reach it by a move.
const Hover Angle = 999

// CompassStep is the spacing of the 16-point compass rose.
const CompassStep Angle = 22.5

// CompassAngles returns the 16 bearings 0, 22.5, ..., 337.5 in ascending order.
func CompassAngles() []Angle {
	angles := make([]Angle, 0, 16)
	for i := range 16 {
		angles = append(angles, Angle(i)*CompassStep)
	}
	return angles
}

// Normalize maps the angle into [0, 360), so -90 becomes 270 and 360 becomes
// 0. NaN and infinities normalize to NaN, which matches no bearing.
func (a Angle) Normalize() Angle {
	v := math.Mod(float64(a), 360)
	if v < 0 {
		v = math.Mod(v+360, 360)
	}
	return Angle(v)
}

// IsHover reports whether the angle is the Hover sentinel.
func (a Angle) IsHover() bool {
	return a == Hover
}

// Radians converts the bearing for use with math.Cos and math.Sin.
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / 180
}

func (a Angle) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}
