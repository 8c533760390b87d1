// Package geojson renders delivery paths and regions as GeoJSON for map
// viewers such as geojson.io.
package geojson

import (
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/region"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	TypeDeliveryPath = "DeliveryPath"
	TypeCentralArea  = "CentralArea"
	TypeNoFlyZone    = "NoFlyZone"

	pathStroke = "#000000"
)

// DeliveryPath returns a FeatureCollection holding one LineString feature
// for waypoints. Consecutive equal positions (hover steps) are collapsed.
func DeliveryPath(waypoints []kernel.Position) *geojson.FeatureCollection {
	line := make(orb.LineString, 0, len(waypoints))
	for _, wp := range waypoints {
		pt := orb.Point{wp.Lng(), wp.Lat()}
		if n := len(line); n > 0 && line[n-1] == pt {
			continue
		}
		line = append(line, pt)
	}

	f := geojson.NewFeature(line)
	f.Properties["type"] = TypeDeliveryPath
	f.Properties["stroke"] = pathStroke

	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	return fc
}

// AppendRegion adds r to fc as a Polygon feature. kind is one of
// TypeCentralArea or TypeNoFlyZone.
func AppendRegion(fc *geojson.FeatureCollection, kind string, r region.NamedRegion) {
	f := geojson.NewFeature(orb.Polygon{region.ToOrbRing(r)})
	f.Properties["type"] = kind
	f.Properties["name"] = r.Name
	fc.Append(f)
}
