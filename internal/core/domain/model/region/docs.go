// Package region models the polygons that constrain a delivery flight: the
// central area and the no-fly zones.
//
// Any type that can list its vertices in ring order satisfies Region. Two
// shapes are provided: Polygon, a plain vertex list, and NamedRegion, the
// shape delivered by the data provider. FromPairs and FromOrbRing convert
// other representations at the boundary.
//
// Contains is boundary inclusive: a point on an edge or a vertex is inside.
package region
