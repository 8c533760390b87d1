package region

import (
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"

	"github.com/paulmach/orb"
)

// MinVertices is the smallest vertex count of a usable polygon.
const MinVertices = 3

// Region is an ordered ring of vertices. The edge from the last vertex back to
// the first is implied and must not be repeated.
type Region interface {
	Vertices() []kernel.Position
}

// Polygon is a Region backed by a vertex slice.
type Polygon []kernel.Position

func (p Polygon) Vertices() []kernel.Position {
	return p
}

// NamedRegion is a polygon with the name the data provider gives it,
// for example "George Square Area".
type NamedRegion struct {
	Name    string
	Polygon Polygon
}

func (r NamedRegion) Vertices() []kernel.Position {
	return r.Polygon
}

// FromPairs builds a Polygon from fixed (lng, lat) pairs.
func FromPairs(pairs [][2]float64) (Polygon, error) {
	poly := make(Polygon, 0, len(pairs))
	for i, pair := range pairs {
		p, err := kernel.NewPosition(pair[0], pair[1])
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		poly = append(poly, p)
	}
	return poly, nil
}

// FromOrbRing builds a Polygon from an orb ring. orb rings repeat the first
// point at the end; that closing point is dropped.
func FromOrbRing(ring orb.Ring) (Polygon, error) {
	pts := []orb.Point(ring)
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	pairs := make([][2]float64, 0, len(pts))
	for _, pt := range pts {
		pairs = append(pairs, [2]float64{pt.Lon(), pt.Lat()})
	}
	return FromPairs(pairs)
}

// ToOrbRing converts r into a closed orb ring.
func ToOrbRing(r Region) orb.Ring {
	vs := r.Vertices()
	ring := make(orb.Ring, 0, len(vs)+1)
	for _, v := range vs {
		ring = append(ring, orb.Point{v.Lng(), v.Lat()})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// Bound returns the axis-aligned bounding box of r.
func Bound(r Region) orb.Bound {
	return ToOrbRing(r).Bound()
}

// Validate rejects regions with fewer than MinVertices vertices.
func Validate(r Region) error {
	if r == nil {
		return errs.NewValueIsRequiredError("region")
	}
	if n := len(r.Vertices()); n < MinVertices {
		return errs.NewValueIsInvalidErrorWithCause("vertices",
			fmt.Errorf("polygon has %d vertices, at least %d required", n, MinVertices))
	}
	return nil
}
