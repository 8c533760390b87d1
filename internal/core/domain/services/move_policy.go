package services

import (
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/region"

	"github.com/dhconnelly/rtreego"
)

// noFlyEntry stores a no-fly zone in the R-tree under its padded bounding box.
type noFlyEntry struct {
	zone region.Region
	bbox rtreego.Rect
}

func (e *noFlyEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// MovePolicy encodes the two movement rules of a delivery flight:
//
//   - central area stickiness: a move that leaves the central area from inside
//     it is illegal; entering it is always allowed
//   - no-fly exclusion: a move that ends inside or on the boundary of any
//     no-fly zone is illegal
//
// No-fly zones are looked up through an R-tree of their bounding boxes before
// the exact containment test. The boxes are padded by region.EdgeEpsilon, so the
// lookup never hides a zone that region.Contains would match.
//
// A nil central area disables the stickiness rule.
type MovePolicy struct {
	central region.Region
	zones   []region.Region
	index   *rtreego.Rtree
}

// NewMovePolicy indexes the no-fly zones. Zones without vertices are ignored
// since they contain no point.
func NewMovePolicy(central region.Region, noFlyZones []region.Region) *MovePolicy {
	p := &MovePolicy{central: central}

	tree := rtreego.NewTree(2, 25, 50)
	indexed := 0
	for _, z := range noFlyZones {
		if z == nil || len(z.Vertices()) == 0 {
			continue
		}
		bbox, err := paddedRect(z)
		if err != nil {
			// Not indexable; fall back to an exact test on every call.
			p.zones = append(p.zones, z)
			continue
		}
		tree.Insert(&noFlyEntry{zone: z, bbox: bbox})
		indexed++
	}
	if indexed > 0 {
		p.index = tree
	}

	return p
}

// Allows reports whether the drone may move from current to candidate.
func (p *MovePolicy) Allows(current, candidate kernel.Position) bool {
	if p.central != nil {
		currentIn := region.Contains(p.central, current)
		candidateIn := region.Contains(p.central, candidate)
		if currentIn && !candidateIn {
			return false
		}
	}

	return !p.InNoFlyZone(candidate)
}

// InNoFlyZone reports whether pos lies inside or on the boundary of a no-fly zone.
func (p *MovePolicy) InNoFlyZone(pos kernel.Position) bool {
	for _, z := range p.zones {
		if region.Contains(z, pos) {
			return true
		}
	}

	if p.index == nil {
		return false
	}

	query, err := rtreego.NewRect(
		rtreego.Point{pos.Lng() - region.EdgeEpsilon, pos.Lat() - region.EdgeEpsilon},
		[]float64{2 * region.EdgeEpsilon, 2 * region.EdgeEpsilon},
	)
	if err != nil {
		return false
	}

	for _, hit := range p.index.SearchIntersect(query) {
		if region.Contains(hit.(*noFlyEntry).zone, pos) {
			return true
		}
	}
	return false
}

func paddedRect(r region.Region) (rtreego.Rect, error) {
	b := region.Bound(r)
	return rtreego.NewRect(
		rtreego.Point{b.Min.Lon() - region.EdgeEpsilon, b.Min.Lat() - region.EdgeEpsilon},
		[]float64{
			b.Max.Lon() - b.Min.Lon() + 2*region.EdgeEpsilon,
			b.Max.Lat() - b.Min.Lat() + 2*region.EdgeEpsilon,
		},
	)
}
