// Package kernel provides the geometry primitives of the drone delivery domain.
//
// The package includes:
//   - Position: an immutable (lng, lat) value object, comparable and usable as a map key
//   - Angle: a compass bearing in degrees, with the Hover sentinel for the first waypoint
//   - Grid: the move model (step length, closeness threshold, allowed bearings) with
//     the IsClose and Step operations
//   - UUID: identifiers of planned delivery paths
//
// Everything here is pure and safe for concurrent use. Distances are Euclidean in
// degrees; there is no projection to meters.
package kernel
