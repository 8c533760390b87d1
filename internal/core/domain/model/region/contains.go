package region

import (
	"math"

	"dronedelivery/internal/core/domain/model/kernel"
)

// EdgeEpsilon is the tolerance of the on-edge test for slanted edges.
const EdgeEpsilon = 1e-9

// Contains reports whether p lies inside r or on its boundary.
//
// A point on any edge is inside. Otherwise a horizontal ray is cast from p
// towards increasing longitude and p is inside iff it crosses an odd number
// of edges. Edges use the half-open rule (y1 > py) != (y2 > py), so a ray
// through a vertex is counted once.
func Contains(r Region, p kernel.Position) bool {
	vs := r.Vertices()
	n := len(vs)
	if n == 0 {
		return false
	}

	for i := range n {
		if onEdge(vs[i], vs[(i+1)%n], p) {
			return true
		}
	}

	px, py := p.Lng(), p.Lat()
	inside := false
	for i := range n {
		x1, y1 := vs[i].Lng(), vs[i].Lat()
		x2, y2 := vs[(i+1)%n].Lng(), vs[(i+1)%n].Lat()

		if (y1 > py) != (y2 > py) {
			x := x1 + (py-y1)/(y2-y1)*(x2-x1)
			if px < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onEdge(a, b, p kernel.Position) bool {
	x1, y1 := a.Lng(), a.Lat()
	x2, y2 := b.Lng(), b.Lat()
	px, py := p.Lng(), p.Lat()

	if x1 == x2 && y1 == y2 {
		return false
	}

	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)

	switch {
	case y1 == y2:
		return py == y1 && px >= minX && px <= maxX
	case x1 == x2:
		return px == x1 && py >= minY && py <= maxY
	default:
		if px < minX || px > maxX {
			return false
		}
		slope := (y2 - y1) / (x2 - x1)
		return math.Abs(slope*(px-x1)+y1-py) <= EdgeEpsilon
	}
}
